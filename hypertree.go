package sphincs

// Computes the root of the hypertree, which is the root of the single
// subtree on the top layer.
func (ctx *Context) htRoot(pad scratchPad, skSeed, pubSeed []byte) []byte {
	mt := ctx.genSubTree(pad, skSeed, pubSeed, SubTreeAddress{
		Layer: ctx.p.D - 1,
		Tree:  0,
	})
	ret := make([]byte, ctx.p.N)
	copy(ret, mt.Root())
	return ret
}

// Signs the n-byte msg (the FORS public key) with the hypertree
// starting at the given leaf of the given bottom subtree.  sig should
// have room for ctx.htSigBytes bytes.
func (ctx *Context) htSignInto(pad scratchPad, msg, skSeed, pubSeed []byte,
	tree uint64, leaf uint32, sig []byte) {
	n := ctx.p.N
	layerSigBytes := ctx.wotsSigBytes + ctx.treeHeight*n
	root := make([]byte, n)
	copy(root, msg)
	mt := newMerkleTree(ctx.treeHeight+1, n)

	var layer uint32
	for layer = 0; layer < ctx.p.D; layer++ {
		layerSig := sig[layer*layerSigBytes : (layer+1)*layerSigBytes]
		sta := SubTreeAddress{Layer: layer, Tree: tree}
		otsAddr := sta.address()
		otsAddr.setType(ADDR_TYPE_WOTS)
		otsAddr.setKeyPair(leaf)

		ctx.wotsSignInto(pad, root, skSeed, pubSeed, otsAddr,
			layerSig[:ctx.wotsSigBytes])
		ctx.genSubTreeInto(pad, skSeed, pubSeed, sta, mt)
		mt.AuthPathInto(leaf, layerSig[ctx.wotsSigBytes:])
		copy(root, mt.Root())

		leaf = uint32(tree & ((1 << ctx.treeHeight) - 1))
		tree >>= ctx.treeHeight
	}
}

// Computes the root of the hypertree from a hypertree signature on the
// n-byte msg.  The result is written into root.
func (ctx *Context) htPkFromSigInto(pad scratchPad, sig, msg, pubSeed []byte,
	tree uint64, leaf uint32, root []byte) {
	n := ctx.p.N
	layerSigBytes := ctx.wotsSigBytes + ctx.treeHeight*n
	node := make([]byte, n)
	copy(root, msg)

	var layer uint32
	for layer = 0; layer < ctx.p.D; layer++ {
		layerSig := sig[layer*layerSigBytes : (layer+1)*layerSigBytes]
		addr := SubTreeAddress{Layer: layer, Tree: tree}.address()
		otsAddr := addr
		otsAddr.setType(ADDR_TYPE_WOTS)
		otsAddr.setKeyPair(leaf)
		nodeAddr := addr
		nodeAddr.setType(ADDR_TYPE_HASHTREE)

		ctx.wotsPkFromSigInto(pad, layerSig[:ctx.wotsSigBytes], root,
			pubSeed, otsAddr, node)
		ctx.rootFromAuthPathInto(pad, node, leaf, 0,
			layerSig[ctx.wotsSigBytes:], pubSeed, nodeAddr, root)

		leaf = uint32(tree & ((1 << ctx.treeHeight) - 1))
		tree >>= ctx.treeHeight
	}
}

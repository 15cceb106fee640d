package sphincs

// Extracts the ForsTrees indices of ForsHeight bits each from the
// message digest md.  Bits are read least-significant first within
// each byte.
func (ctx *Context) forsIndicesInto(md []byte, out []uint32) {
	a := ctx.p.ForsHeight
	var i, j, offset uint32
	for i = 0; i < ctx.p.ForsTrees; i++ {
		out[i] = 0
		for j = 0; j < a; j++ {
			bit := uint32(md[offset>>3]>>(offset&7)) & 1
			out[i] |= bit << j
			offset++
		}
	}
}

func (ctx *Context) forsIndices(md []byte) []uint32 {
	ret := make([]uint32, ctx.p.ForsTrees)
	ctx.forsIndicesInto(md, ret)
	return ret
}

// Returns the FORS tree address for the FORS key pair at the given
// bottom leaf of the hypertree.
func forsTreeAddr(tree uint64, leaf uint32) (addr address) {
	addr.setLayer(0)
	addr.setTree(tree)
	addr.setType(ADDR_TYPE_FORSTREE)
	addr.setKeyPair(leaf)
	return
}

// Derives the secret value of the FORS leaf with the given global index.
func (ctx *Context) forsSkInto(pad scratchPad, skSeed, pubSeed []byte,
	treeAddr address, idx uint32, out []byte) {
	var prfAddr address
	prfAddr.setKeyPairFrom(treeAddr)
	prfAddr.setType(ADDR_TYPE_FORSPRF)
	prfAddr.setKeyPair(treeAddr[5])
	prfAddr.setTreeIndex(idx)
	ctx.prfAddrInto(pad, prfAddr, pubSeed, skSeed, out)
}

// Computes the FORS leaf with the given global index.
func (ctx *Context) forsLeafInto(pad scratchPad, skSeed, pubSeed []byte,
	treeAddr address, idx uint32, out []byte) {
	ctx.forsSkInto(pad, skSeed, pubSeed, treeAddr, idx, out)
	treeAddr.setTreeHeight(0)
	treeAddr.setTreeIndex(idx)
	ctx.fInto(pad, out, pubSeed, treeAddr, out)
}

// Computes the i-th FORS tree into mt, which should have
// height=ForsHeight+1.
func (ctx *Context) genForsTreeInto(pad scratchPad, skSeed, pubSeed []byte,
	treeAddr address, i uint32, mt merkleTree) {
	offset := i << ctx.p.ForsHeight
	ctx.genTreeInto(pad, pubSeed, treeAddr, offset, mt,
		func(pad scratchPad, idx uint32) {
			ctx.forsLeafInto(pad, skSeed, pubSeed, treeAddr, offset+idx,
				mt.Node(0, idx))
		})
}

// Compresses the roots of the FORS trees into the FORS public key.
func (ctx *Context) forsRootsToPkInto(pad scratchPad, roots, pubSeed []byte,
	treeAddr address, out []byte) {
	var rootsAddr address
	rootsAddr.setKeyPairFrom(treeAddr)
	rootsAddr.setType(ADDR_TYPE_FORSROOTS)
	rootsAddr.setKeyPair(treeAddr[5])
	ctx.thashInto(pad, roots, pubSeed, rootsAddr, out)
}

// Signs the message digest md with the FORS key pair at treeAddr.
// Writes the signature into sig and the FORS public key into pk.
func (ctx *Context) forsSignInto(pad scratchPad, md, skSeed, pubSeed []byte,
	treeAddr address, sig, pk []byte) {
	n := ctx.p.N
	a := ctx.p.ForsHeight
	indices := ctx.forsIndices(md)
	roots := pad.wotsBuf()[:ctx.p.ForsTrees*n]
	mt := newMerkleTree(a+1, n)

	var i uint32
	for i = 0; i < ctx.p.ForsTrees; i++ {
		treeSig := sig[i*(a+1)*n : (i+1)*(a+1)*n]
		ctx.forsSkInto(pad, skSeed, pubSeed, treeAddr,
			(i<<a)+indices[i], treeSig[:n])
		ctx.genForsTreeInto(pad, skSeed, pubSeed, treeAddr, i, mt)
		mt.AuthPathInto(indices[i], treeSig[n:])
		copy(roots[i*n:(i+1)*n], mt.Root())
	}

	ctx.forsRootsToPkInto(pad, roots, pubSeed, treeAddr, pk)
}

// Computes the FORS public key from a signature of the message digest md.
func (ctx *Context) forsPkFromSigInto(pad scratchPad, sig, md, pubSeed []byte,
	treeAddr address, pk []byte) {
	n := ctx.p.N
	a := ctx.p.ForsHeight
	indices := ctx.forsIndices(md)
	roots := pad.wotsBuf()[:ctx.p.ForsTrees*n]
	leaf := make([]byte, n)

	var i uint32
	for i = 0; i < ctx.p.ForsTrees; i++ {
		treeSig := sig[i*(a+1)*n : (i+1)*(a+1)*n]
		offset := i << a
		leafAddr := treeAddr
		leafAddr.setTreeHeight(0)
		leafAddr.setTreeIndex(offset + indices[i])
		ctx.fInto(pad, treeSig[:n], pubSeed, leafAddr, leaf)
		ctx.rootFromAuthPathInto(pad, leaf, indices[i], offset,
			treeSig[n:], pubSeed, treeAddr, roots[i*n:(i+1)*n])
	}

	ctx.forsRootsToPkInto(pad, roots, pubSeed, treeAddr, pk)
}

// Computes the FORS public key directly from the secret seed.
func (ctx *Context) forsPkGen(pad scratchPad, skSeed, pubSeed []byte,
	treeAddr address) []byte {
	n := ctx.p.N
	roots := make([]byte, ctx.p.ForsTrees*n)
	mt := newMerkleTree(ctx.p.ForsHeight+1, n)
	var i uint32
	for i = 0; i < ctx.p.ForsTrees; i++ {
		ctx.genForsTreeInto(pad, skSeed, pubSeed, treeAddr, i, mt)
		copy(roots[i*n:(i+1)*n], mt.Root())
	}
	ret := make([]byte, n)
	ctx.forsRootsToPkInto(pad, roots, pubSeed, treeAddr, ret)
	return ret
}

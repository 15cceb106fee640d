package sphincs

// Represents a merkle tree of n-byte strings T[i,j] with t levels as
//
//                    T[t-1,0]
//                 /
//               (...)        (...)
//            /           \            \
//         T[1,0]        T[1,1]  ...  T[1,2^(t-2)-1]
//        /     \       /      \          \
//     T[0,0] T[0,1] T[0,2]  T[0,3]  ...  T[0,2^(t-1)-1]
//
// as an (2^t-1)*n byte array.  Both the subtrees of the hypertree and
// the FORS trees are stored this way.
type merkleTree struct {
	height uint32 // number of levels, so one more than the tree height
	n      uint32
	buf    []byte
}

// Allocates memory for a merkle tree of n-byte strings with the given
// number of levels.
func newMerkleTree(height, n uint32) merkleTree {
	return merkleTree{
		height: height,
		n:      n,
		buf:    make([]byte, ((1<<height)-1)*n),
	}
}

// Returns a slice to the given node.
func (mt *merkleTree) Node(height, index uint32) []byte {
	ptr := mt.n * ((1 << mt.height) - (1 << (mt.height - height)) + index)
	return mt.buf[ptr : ptr+mt.n]
}

// Returns the root of the tree.
func (mt *merkleTree) Root() []byte {
	return mt.Node(mt.height-1, 0)
}

// Writes the authentication path of the given leaf into out, which
// should have room for height-1 nodes.
func (mt *merkleTree) AuthPathInto(leaf uint32, out []byte) {
	var h uint32
	for h = 0; h < mt.height-1; h++ {
		copy(out[h*mt.n:(h+1)*mt.n], mt.Node(h, (leaf>>h)^1))
	}
}

func (mt *merkleTree) AuthPath(leaf uint32) []byte {
	ret := make([]byte, (mt.height-1)*mt.n)
	mt.AuthPathInto(leaf, ret)
	return ret
}

// Fills mt by computing the leafs with genLeaf and then hashing up.
//
// nodeAddr should be a hash tree or FORS tree address with everything
// except the height and index set.  offset is the global index of
// the leftmost leaf: the index of the node at height z and position j
// within this tree is (offset >> z) + j.
//
// The leafs are computed in parallel (see parallelFor).  genLeaf should
// write the leaf into mt.Node(0, idx).
func (ctx *Context) genTreeInto(pad scratchPad, pubSeed []byte,
	nodeAddr address, offset uint32, mt merkleTree,
	genLeaf func(pad scratchPad, idx uint32)) {
	treeHeight := mt.height - 1
	if mt.n != ctx.p.N {
		panic("merkle tree has wrong node size")
	}

	// First, compute the leafs
	ctx.parallelFor(pad, 1<<treeHeight, genLeaf)

	// Next, compute the internal nodes and root
	var height, idx uint32
	for height = 1; height <= treeHeight; height++ {
		nodeAddr.setTreeHeight(height)
		for idx = 0; idx < (1 << (treeHeight - height)); idx++ {
			nodeAddr.setTreeIndex((offset >> height) + idx)
			ctx.hInto(pad, mt.Node(height-1, 2*idx),
				mt.Node(height-1, 2*idx+1),
				pubSeed, nodeAddr, mt.Node(height, idx))
		}
	}
}

// Compute a subtree of the hypertree by expanding the secret seed into
// WOTS+ keypairs and then hashing up.
func (ctx *Context) genSubTree(pad scratchPad, skSeed, pubSeed []byte,
	sta SubTreeAddress) merkleTree {
	mt := newMerkleTree(ctx.treeHeight+1, ctx.p.N)
	ctx.genSubTreeInto(pad, skSeed, pubSeed, sta, mt)
	return mt
}

// Compute a subtree of the hypertree by expanding the secret seed into
// WOTS+ keypairs and then hashing up.
// mt should have height=ctx.treeHeight+1 and n=ctx.p.N.
func (ctx *Context) genSubTreeInto(pad scratchPad, skSeed, pubSeed []byte,
	sta SubTreeAddress, mt merkleTree) {
	if mt.height != ctx.treeHeight+1 {
		panic("merkle tree has wrong height for a subtree")
	}
	addr := sta.address()

	var otsAddr, nodeAddr address
	otsAddr.setSubTreeFrom(addr)
	otsAddr.setType(ADDR_TYPE_WOTS)
	nodeAddr.setSubTreeFrom(addr)
	nodeAddr.setType(ADDR_TYPE_HASHTREE)

	ctx.genTreeInto(pad, pubSeed, nodeAddr, 0, mt,
		func(pad scratchPad, idx uint32) {
			leafAddr := otsAddr
			leafAddr.setKeyPair(idx)
			ctx.wotsPkGenInto(pad, skSeed, pubSeed, leafAddr, mt.Node(0, idx))
		})
}

// Computes the root of a merkle tree from a leaf and its authentication
// path.  nodeAddr and offset are as for genTreeInto; idx is the position
// of the leaf within the tree.  out may overlap with leaf.
func (ctx *Context) rootFromAuthPathInto(pad scratchPad, leaf []byte,
	idx, offset uint32, authPath, pubSeed []byte, nodeAddr address,
	out []byte) {
	n := ctx.p.N
	height := uint32(len(authPath)) / n
	copy(out, leaf)
	var z uint32
	for z = 0; z < height; z++ {
		nodeAddr.setTreeHeight(z + 1)
		nodeAddr.setTreeIndex((offset + idx) >> (z + 1))
		sibling := authPath[z*n : (z+1)*n]
		if (idx>>z)&1 == 0 {
			ctx.hInto(pad, out, sibling, pubSeed, nodeAddr, out)
		} else {
			ctx.hInto(pad, sibling, out, pubSeed, nodeAddr, out)
		}
	}
}

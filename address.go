package sphincs

import (
	"encoding/binary"
)

const (
	ADDR_TYPE_WOTS      = 0
	ADDR_TYPE_WOTSPK    = 1
	ADDR_TYPE_HASHTREE  = 2
	ADDR_TYPE_FORSTREE  = 3
	ADDR_TYPE_FORSROOTS = 4
	ADDR_TYPE_WOTSPRF   = 5
	ADDR_TYPE_FORSPRF   = 6
)

// Address used in SPHINCS+ to diversify the hashes.  It is encoded as
// eight big-endian 32-bit words:
//
//	layer | tree (3 words) | type | keypair | chain/height | hash/index
//
// See writeInto().
type address [8]uint32

// Represents the position of a subtree in the hypertree.
type SubTreeAddress struct {
	// The layer of the subtree.  The bottom subtrees have layer=0
	Layer uint32

	// The offset in the layer.  The leftmost subtrees have tree=0
	Tree uint64
}

// Converts to address
func (sta SubTreeAddress) address() (addr address) {
	addr.setLayer(sta.Layer)
	addr.setTree(sta.Tree)
	return
}

func (addr *address) setLayer(layer uint32) {
	addr[0] = layer
}

// The tree address is 96 bits wide; we only use the lower 64.
func (addr *address) setTree(tree uint64) {
	addr[1] = 0
	addr[2] = uint32(tree >> 32)
	addr[3] = uint32(tree)
}

// Sets the type and clears the type-specific words.
func (addr *address) setType(typ uint32) {
	addr[4] = typ
	addr[5] = 0
	addr[6] = 0
	addr[7] = 0
}

func (addr *address) setSubTreeFrom(other address) {
	addr[0] = other[0]
	addr[1] = other[1]
	addr[2] = other[2]
	addr[3] = other[3]
}

// Copies the subtree and the key pair from the other address.
func (addr *address) setKeyPairFrom(other address) {
	addr.setSubTreeFrom(other)
	addr[5] = other[5]
}

func (addr *address) setKeyPair(keyPair uint32) {
	addr[5] = keyPair
}

func (addr *address) setChain(chain uint32) {
	addr[6] = chain
}

func (addr *address) setHash(hash uint32) {
	addr[7] = hash
}

func (addr *address) setTreeHeight(treeHeight uint32) {
	addr[6] = treeHeight
}

func (addr *address) setTreeIndex(treeIndex uint32) {
	addr[7] = treeIndex
}

func (addr *address) writeInto(buf []byte) {
	for i := 0; i < 8; i++ {
		binary.BigEndian.PutUint32(buf[i*4:(i+1)*4], addr[i])
	}
}

func (addr *address) toBytes() []byte {
	ret := make([]byte, 32)
	addr.writeInto(ret)
	return ret
}

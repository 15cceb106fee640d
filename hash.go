package sphincs

import (
	"github.com/templexxx/xor"
	"github.com/templexxx/xorsimd"
)

// Compute PRF(PK.seed, SK.seed, ADRS) = SHAKE256(PK.seed || ADRS || SK.seed)
// into out, which must be N bytes.
func (ctx *Context) prfAddrInto(pad scratchPad, addr address,
	pubSeed, skSeed, out []byte) {
	addr.writeInto(pad.addrBuf())
	pad.shake.Reset()
	pad.shake.Write(pubSeed)
	pad.shake.Write(pad.addrBuf())
	pad.shake.Write(skSeed)
	pad.shake.Read(out)
}

func (ctx *Context) prfAddr(pad scratchPad, addr address,
	pubSeed, skSeed []byte) []byte {
	ret := make([]byte, ctx.p.N)
	ctx.prfAddrInto(pad, addr, pubSeed, skSeed, ret)
	return ret
}

// Compute the randomizer R = PRF_msg(SK.prf, OptRand, M)
// = SHAKE256(SK.prf || OptRand || M).
func (ctx *Context) prfMsg(pad scratchPad, skPrf, optRand, msg []byte) []byte {
	ret := make([]byte, ctx.p.N)
	pad.shake.Reset()
	pad.shake.Write(skPrf)
	pad.shake.Write(optRand)
	pad.shake.Write(msg)
	pad.shake.Read(ret)
	return ret
}

// Compute H_msg(R, PK.seed, PK.root, M) = SHAKE256(R || PK.seed || PK.root || M)
// and split it into the part selecting the FORS leaves, the index of the
// bottom subtree and the index of the leaf therein.
func (ctx *Context) hashMessage(pad scratchPad, R, pubSeed, root,
	msg []byte) (md []byte, tree uint64, leaf uint32) {
	digest := make([]byte, ctx.digestBytes)
	pad.shake.Reset()
	pad.shake.Write(R)
	pad.shake.Write(pubSeed)
	pad.shake.Write(root)
	pad.shake.Write(msg)
	pad.shake.Read(digest)
	return ctx.splitDigest(digest)
}

// Splits the output of H_msg.  See hashMessage().
func (ctx *Context) splitDigest(digest []byte) (md []byte,
	tree uint64, leaf uint32) {
	mdBytes := ctx.p.ForsMessageSize()
	treeBytes := ctx.p.treeIdxBytes()
	treeBits := ctx.p.treeBits()

	md = digest[:mdBytes]
	tree = decodeUint64(digest[mdBytes : mdBytes+treeBytes])
	if treeBits < 64 {
		tree &= (uint64(1) << treeBits) - 1
	}
	leaf = uint32(decodeUint64(digest[mdBytes+treeBytes:]))
	leaf &= (uint32(1) << ctx.treeHeight) - 1
	return
}

// Compute the robust tweakable hash
//
//	SHAKE256(PK.seed || ADRS || in ^ mask)
//
// where mask = SHAKE256(PK.seed || ADRS) has the same length as in.
// in must be a multiple of N bytes and out must be N bytes.  in and out
// may overlap.
func (ctx *Context) thashRobustInto(pad scratchPad, in, pubSeed []byte,
	addr address, out []byte) {
	mask := pad.maskBuf()[:len(in)]
	masked := pad.maskedBuf()[:len(in)]
	addr.writeInto(pad.addrBuf())
	pad.shake.Reset()
	pad.shake.Write(pubSeed)
	pad.shake.Write(pad.addrBuf())
	pad.shake.Read(mask)
	if len(in) <= 2*int(ctx.p.N) {
		xor.BytesSameLen(masked, in, mask)
	} else {
		xorsimd.Bytes(masked, in, mask)
	}
	pad.shake.Reset()
	pad.shake.Write(pubSeed)
	pad.shake.Write(pad.addrBuf())
	pad.shake.Write(masked)
	pad.shake.Read(out)
}

// Compute the simple tweakable hash SHAKE256(PK.seed || ADRS || in).
// in must be a multiple of N bytes and out must be N bytes.  in and out
// may overlap.
func (ctx *Context) thashSimpleInto(pad scratchPad, in, pubSeed []byte,
	addr address, out []byte) {
	addr.writeInto(pad.addrBuf())
	pad.shake.Reset()
	pad.shake.Write(pubSeed)
	pad.shake.Write(pad.addrBuf())
	pad.shake.Write(in)
	pad.shake.Read(out)
}

// Compute F, the tweakable hash on a single node, used in the
// WOTS+ chains and for the FORS leaves.
func (ctx *Context) fInto(pad scratchPad, in, pubSeed []byte,
	addr address, out []byte) {
	ctx.thashInto(pad, in, pubSeed, addr, out)
}

func (ctx *Context) f(in, pubSeed []byte, addr address) []byte {
	ret := make([]byte, ctx.p.N)
	ctx.fInto(ctx.newScratchPad(), in, pubSeed, addr, ret)
	return ret
}

// Compute H, the tweakable hash used to hash up the merkle trees.
// out may overlap with left or right.
func (ctx *Context) hInto(pad scratchPad, left, right, pubSeed []byte,
	addr address, out []byte) {
	buf := pad.hBuf()
	copy(buf, left)
	copy(buf[ctx.p.N:], right)
	ctx.thashInto(pad, buf, pubSeed, addr, out)
}

func (ctx *Context) h(left, right, pubSeed []byte, addr address) []byte {
	ret := make([]byte, ctx.p.N)
	ctx.hInto(ctx.newScratchPad(), left, right, pubSeed, addr, ret)
	return ret
}

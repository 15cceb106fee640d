package sphincs

// Converts a message into positions on the WOTS+ chains, which
// are called "chain lengths".  The result is written into out, which
// should have room for ctx.wotsLen entries.
func (ctx *Context) wotsChainLengthsInto(msg []byte, out []uint8) {
	// compute the chain lengths for the message itself
	ctx.toBaseW(msg, out[:ctx.wotsLen1])

	// compute the checksum
	var csum uint32 = 0
	for i := 0; i < int(ctx.wotsLen1); i++ {
		csum += uint32(ctx.p.WotsW) - 1 - uint32(out[i])
	}
	csumBits := ctx.wotsLen2 * uint32(ctx.wotsLogW)
	csum = csum << ((8 - (csumBits % 8)) % 8)

	// put checksum in buffer
	ctx.toBaseW(
		encodeUint64(uint64(csum), int((csumBits+7)/8)),
		out[ctx.wotsLen1:ctx.wotsLen])
}

func (ctx *Context) wotsChainLengths(msg []byte) []uint8 {
	ret := make([]uint8, ctx.wotsLen)
	ctx.wotsChainLengthsInto(msg, ret)
	return ret
}

// Converts the given array of bytes into base w for the WOTS+ one-time
// signature scheme.  Only works if LogW divides into 8.
func (ctx *Context) toBaseW(input []byte, output []uint8) {
	var in uint32 = 0
	var total uint8
	var bits uint8

	for out := 0; out < len(output); out++ {
		if bits == 0 {
			total = input[in]
			in++
			bits = 8
		}
		bits -= ctx.wotsLogW
		output[out] = uint8(uint16(total>>bits) & (ctx.p.WotsW - 1))
	}
}

// Compute the (start + steps)th value in the WOTS+ chain, given
// the start'th value in the chain.  addr should be a WOTS+ hash
// address with the chain set.
func (ctx *Context) wotsGenChainInto(pad scratchPad, in []byte,
	start, steps uint16, pubSeed []byte, addr address, out []byte) {
	copy(out, in)
	var i uint16
	for i = start; i < (start+steps) && (i < ctx.p.WotsW); i++ {
		addr.setHash(uint32(i))
		ctx.fInto(pad, out, pubSeed, addr, out)
	}
}

// Returns the address used to derive the secret chain values of the
// WOTS+ key pair at the given WOTS+ hash address.
func wotsPrfAddr(addr address) (prfAddr address) {
	prfAddr.setKeyPairFrom(addr)
	prfAddr.setType(ADDR_TYPE_WOTSPRF)
	prfAddr.setKeyPair(addr[5])
	return
}

// Returns the address used to compress the WOTS+ public key of the key
// pair at the given WOTS+ hash address.
func wotsPkAddr(addr address) (pkAddr address) {
	pkAddr.setSubTreeFrom(addr)
	pkAddr.setType(ADDR_TYPE_WOTSPK)
	pkAddr.setKeyPair(addr[5])
	return
}

// Expands the secret key seed into the start of the given chain
func (ctx *Context) wotsChainStartInto(pad scratchPad, skSeed, pubSeed []byte,
	prfAddr address, chain uint32, out []byte) {
	prfAddr.setChain(chain)
	prfAddr.setHash(0)
	ctx.prfAddrInto(pad, prfAddr, pubSeed, skSeed, out)
}

// Generate the compressed WOTS+ public key of the key pair at
// the WOTS+ hash address addr.
func (ctx *Context) wotsPkGenInto(pad scratchPad, skSeed, pubSeed []byte,
	addr address, out []byte) {
	buf := pad.wotsBuf()
	prfAddr := wotsPrfAddr(addr)
	var i uint32
	for i = 0; i < ctx.wotsLen; i++ {
		chain := buf[ctx.p.N*i : ctx.p.N*(i+1)]
		ctx.wotsChainStartInto(pad, skSeed, pubSeed, prfAddr, i, chain)
		addr.setChain(i)
		ctx.wotsGenChainInto(pad, chain, 0, ctx.p.WotsW-1, pubSeed, addr,
			chain)
	}
	ctx.thashInto(pad, buf[:ctx.wotsSigBytes], pubSeed, wotsPkAddr(addr), out)
}

func (ctx *Context) wotsPkGen(pad scratchPad, skSeed, pubSeed []byte,
	addr address) []byte {
	ret := make([]byte, ctx.p.N)
	ctx.wotsPkGenInto(pad, skSeed, pubSeed, addr, ret)
	return ret
}

// Create a WOTS+ signature of a n-byte message into sig.
func (ctx *Context) wotsSignInto(pad scratchPad, msg, skSeed, pubSeed []byte,
	addr address, sig []byte) {
	lengths := pad.lengths
	ctx.wotsChainLengthsInto(msg, lengths)
	prfAddr := wotsPrfAddr(addr)
	var i uint32
	for i = 0; i < ctx.wotsLen; i++ {
		chain := sig[ctx.p.N*i : ctx.p.N*(i+1)]
		ctx.wotsChainStartInto(pad, skSeed, pubSeed, prfAddr, i, chain)
		addr.setChain(i)
		ctx.wotsGenChainInto(pad, chain, 0, uint16(lengths[i]), pubSeed,
			addr, chain)
	}
}

func (ctx *Context) wotsSign(pad scratchPad, msg, skSeed, pubSeed []byte,
	addr address) []byte {
	ret := make([]byte, ctx.wotsSigBytes)
	ctx.wotsSignInto(pad, msg, skSeed, pubSeed, addr, ret)
	return ret
}

// Computes the compressed WOTS+ public key from a message and
// its WOTS+ signature.
func (ctx *Context) wotsPkFromSigInto(pad scratchPad, sig, msg,
	pubSeed []byte, addr address, out []byte) {
	lengths := pad.lengths
	ctx.wotsChainLengthsInto(msg, lengths)
	buf := pad.wotsBuf()
	var i uint32
	for i = 0; i < ctx.wotsLen; i++ {
		addr.setChain(i)
		ctx.wotsGenChainInto(pad, sig[ctx.p.N*i:ctx.p.N*(i+1)],
			uint16(lengths[i]), ctx.p.WotsW-1-uint16(lengths[i]),
			pubSeed, addr, buf[ctx.p.N*i:ctx.p.N*(i+1)])
	}
	ctx.thashInto(pad, buf[:ctx.wotsSigBytes], pubSeed, wotsPkAddr(addr), out)
}

func (ctx *Context) wotsPkFromSig(pad scratchPad, sig, msg, pubSeed []byte,
	addr address) []byte {
	ret := make([]byte, ctx.p.N)
	ctx.wotsPkFromSigInto(pad, sig, msg, pubSeed, addr, ret)
	return ret
}

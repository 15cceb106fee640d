package sphincs

import (
	"runtime"
	"sync"

	"golang.org/x/crypto/sha3"
)

// SPHINCS+ instance.
// Create one using NewContextFromName or NewContext.
type Context struct {
	// Number of worker goroutines ("threads") to use for expensive operations.
	// Will guess an appropriate number if set to 0.
	Threads int

	p            Params // parameters.
	wotsLogW     uint8  // logarithm of the Winternitz parameter
	wotsLen1     uint32 // WOTS+ chains for message
	wotsLen2     uint32 // WOTS+ chains for checksum
	wotsLen      uint32 // total number of WOTS+ chains
	wotsSigBytes uint32 // length of WOTS+ signature
	treeHeight   uint32 // height of a subtree
	forsSigBytes uint32 // length of FORS signature
	htSigBytes   uint32 // length of hypertree signature
	digestBytes  uint32 // length of the output of H_msg
	sigBytes     uint32 // size of signature
	pkBytes      uint32 // size of public key
	skBytes      uint32 // size of secret key

	// The tweakable hash, either thashRobustInto or thashSimpleInto.
	// Bound once by NewContext.
	thashInto func(pad scratchPad, in, pubSeed []byte, addr address,
		out []byte)

	name *string // name of algorithm
}

// Return new context for the given SPHINCS+ algorithm name (and nil if the
// algorithm name is unknown).
func NewContextFromName(name string) *Context {
	entry, ok := registryNameLut[name]
	if !ok {
		return nil
	}
	ctx, _ := NewContext(entry.params)
	ctx.name = &entry.name
	return ctx
}

// Creates a new context.
func NewContext(params Params) (ctx *Context, err error) {
	if err = params.validate(); err != nil {
		return nil, err
	}

	ctx = new(Context)
	ctx.p = params
	ctx.treeHeight = params.TreeHeight()
	ctx.wotsLogW = params.WotsLogW()
	ctx.wotsLen1 = params.WotsLen1()
	ctx.wotsLen2 = params.WotsLen2()
	ctx.wotsLen = params.WotsLen()
	ctx.wotsSigBytes = params.WotsSignatureSize()
	ctx.forsSigBytes = params.ForsSignatureSize()
	ctx.htSigBytes = params.HypertreeSignatureSize()
	ctx.digestBytes = params.MessageDigestSize()
	ctx.sigBytes = params.SignatureSize()
	ctx.pkBytes = params.PublicKeySize()
	ctx.skBytes = params.PrivateKeySize()

	if params.Variant == Robust {
		ctx.thashInto = ctx.thashRobustInto
	} else {
		ctx.thashInto = ctx.thashSimpleInto
	}

	log.Logf("Created context for %s (n=%d, h=%d, d=%d, a=%d, k=%d, w=%d)",
		ctx.Name(), params.N, params.FullHeight, params.D,
		params.ForsHeight, params.ForsTrees, params.WotsW)
	return
}

// Returns the name of the SPHINCS+ instance and an empty string if it has
// no name.
func (ctx *Context) Name() string {
	if ctx.name == nil {
		name := ctx.p.LookupName()
		if name == "" {
			return ""
		}
		ctx.name = &name
	}
	return *ctx.name
}

// Get parameters of the SPHINCS+ instance
func (ctx *Context) Params() Params {
	return ctx.p
}

// Returns the size of signatures of this SPHINCS+ instance
func (ctx *Context) SignatureSize() uint32 {
	return ctx.sigBytes
}

// Returns the size of public keys of this SPHINCS+ instance
func (ctx *Context) PublicKeySize() uint32 {
	return ctx.pkBytes
}

// Returns the size of private keys of this SPHINCS+ instance
func (ctx *Context) PrivateKeySize() uint32 {
	return ctx.skBytes
}

// Returns the number of worker goroutines to use.
func (ctx *Context) threads() int {
	if ctx.Threads == 0 {
		return runtime.NumCPU()
	}
	return ctx.Threads
}

// A scratchpad used by a single goroutine to avoid memory allocation.
type scratchPad struct {
	buf []byte
	n   uint32

	lengths []uint8     // WOTS+ chain lengths
	shake   sha3.ShakeHash
}

func (pad scratchPad) addrBuf() []byte {
	return pad.buf[:32]
}

// Room for the concatenation of two nodes
func (pad scratchPad) hBuf() []byte {
	return pad.buf[32 : 32+2*pad.n]
}

// Room for the bitmask of the largest input of the tweakable hash.
func (pad scratchPad) maskBuf() []byte {
	return pad.buf[32+2*pad.n : 32+2*pad.n+pad.maxBlocks()*pad.n]
}

// Room for the masked input of the tweakable hash.
func (pad scratchPad) maskedBuf() []byte {
	off := 32 + 2*pad.n + pad.maxBlocks()*pad.n
	return pad.buf[off : off+pad.maxBlocks()*pad.n]
}

// Room for the WOTS+ chain heads or the FORS roots
func (pad scratchPad) wotsBuf() []byte {
	off := 32 + 2*pad.n + 2*pad.maxBlocks()*pad.n
	return pad.buf[off : off+pad.maxBlocks()*pad.n]
}

// Number of n-byte blocks in the largest input of the tweakable hash.
func (pad scratchPad) maxBlocks() uint32 {
	return uint32(len(pad.buf)-32-2*int(pad.n)) / (3 * pad.n)
}

func (ctx *Context) newScratchPad() scratchPad {
	n := ctx.p.N
	blocks := ctx.wotsLen
	if ctx.p.ForsTrees > blocks {
		blocks = ctx.p.ForsTrees
	}
	pad := scratchPad{
		buf:     make([]byte, 32+2*n+3*blocks*n),
		n:       n,
		lengths: make([]uint8, ctx.wotsLen),
		shake:   sha3.NewShake256(),
	}
	return pad
}

// Calls f(pad, idx) for every idx in [0, count).  Uses ctx.Threads
// worker goroutines, each of which with its own scratchpad.  If there
// is only one thread, the given pad is used.
func (ctx *Context) parallelFor(pad scratchPad, count uint32,
	f func(pad scratchPad, idx uint32)) {
	threads := ctx.threads()
	var perBatch uint32 = 32
	if threads == 1 || count <= perBatch {
		var idx uint32
		for idx = 0; idx < count; idx++ {
			f(pad, idx)
		}
		return
	}

	// The code in this branch does exactly the same as in
	// the branch above, but then in parallel.
	wg := &sync.WaitGroup{}
	mux := &sync.Mutex{}
	var idx uint32
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go func() {
			pad := ctx.newScratchPad()
			var ourIdx uint32
			for {
				mux.Lock()
				ourIdx = idx
				idx += perBatch
				mux.Unlock()
				if ourIdx >= count {
					break
				}
				ourEnd := ourIdx + perBatch
				if ourEnd > count {
					ourEnd = count
				}
				for ; ourIdx < ourEnd; ourIdx++ {
					f(pad, ourIdx)
				}
			}
			wg.Done()
		}()
	}

	wg.Wait() // wait for all workers to finish
}

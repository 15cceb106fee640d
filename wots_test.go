package sphincs

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"reflect"
	"testing"
)

func TestWotsChainLengths(t *testing.T) {
	ctx := NewContextFromName("SPHINCS+-SHAKE-128f-robust")

	// all zero digits: maximal checksum 32*15 = 480
	expect := make([]uint8, 35)
	expect[32], expect[33] = 1, 14
	if lengths := ctx.wotsChainLengths(make([]byte, 16)); !reflect.DeepEqual(
		lengths, expect) {
		t.Errorf("wotsChainLengths(0...) = %v", lengths)
	}

	// all digits w-1: checksum zero
	expect = make([]uint8, 35)
	for i := 0; i < 32; i++ {
		expect[i] = 15
	}
	if lengths := ctx.wotsChainLengths(bytes.Repeat([]byte{0xff}, 16)); !reflect.DeepEqual(
		lengths, expect) {
		t.Errorf("wotsChainLengths(ff...) = %v", lengths)
	}

	expect = []uint8{0, 0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0, 7, 0, 8,
		0, 9, 0, 10, 0, 11, 0, 12, 0, 13, 0, 14, 0, 15, 1, 6, 8}
	if lengths := ctx.wotsChainLengths(testBytes(0, 16)); !reflect.DeepEqual(
		lengths, expect) {
		t.Errorf("wotsChainLengths(00 01 ...) = %v", lengths)
	}
}

func TestToBaseW(t *testing.T) {
	for _, tc := range []struct {
		w      uint16
		expect []uint8
	}{
		{4, []uint8{1, 2, 3, 0, 3, 3, 1, 2}},
		{16, []uint8{6, 12, 15, 6}},
		{256, []uint8{0x6c, 0xf6}},
	} {
		ctx, err := NewContext(Params{16, 8, 2, 4, 5, tc.w, Simple})
		if err != nil {
			t.Fatalf("NewContext(): %v", err)
		}
		out := make([]uint8, len(tc.expect))
		ctx.toBaseW([]byte{0x6c, 0xf6}, out)
		if !reflect.DeepEqual(out, tc.expect) {
			t.Errorf("toBaseW() with w=%d returned %v instead of %v",
				tc.w, out, tc.expect)
		}
	}
}

func TestWotsPkGen(t *testing.T) {
	ctx := NewContextFromName("SPHINCS+-SHAKE-128f-robust")
	addr := SubTreeAddress{Layer: 2, Tree: 5}.address()
	addr.setType(ADDR_TYPE_WOTS)
	addr.setKeyPair(3)
	val := hex.EncodeToString(ctx.wotsPkGen(ctx.newScratchPad(),
		testBytes(16, 16), testBytes(0, 16), addr))
	if val != "f1db1f8f3bd434ec74486be2b7c882f8" {
		t.Fatalf("wotsPkGen() returned %s", val)
	}
}

func testWotsSignThenVerify(ctx *Context, t *testing.T) {
	pad := ctx.newScratchPad()
	var pubSeed []byte = make([]byte, ctx.p.N)
	var skSeed []byte = make([]byte, ctx.p.N)
	var msg []byte = make([]byte, ctx.p.N)
	rand.Read(pubSeed)
	rand.Read(skSeed)
	rand.Read(msg)
	addr := SubTreeAddress{Layer: 1, Tree: uint64(rand.Int63())}.address()
	addr.setType(ADDR_TYPE_WOTS)
	addr.setKeyPair(rand.Uint32())

	pk := ctx.wotsPkGen(pad, skSeed, pubSeed, addr)
	sig := ctx.wotsSign(pad, msg, skSeed, pubSeed, addr)
	pk2 := ctx.wotsPkFromSig(pad, sig, msg, pubSeed, addr)
	if !bytes.Equal(pk, pk2) {
		t.Errorf("%s verification of WOTS+ signature failed", ctx.Name())
	}

	msg[0] ^= 1
	pk2 = ctx.wotsPkFromSig(pad, sig, msg, pubSeed, addr)
	if bytes.Equal(pk, pk2) {
		t.Errorf("%s WOTS+ signature verified on the wrong message", ctx.Name())
	}
}

func TestWotsSignThenVerify(t *testing.T) {
	for _, params := range []Params{
		{16, 8, 2, 4, 5, 4, Robust},
		{16, 8, 2, 4, 5, 16, Simple},
		{24, 6, 3, 3, 7, 256, Robust},
		{32, 8, 2, 4, 5, 16, Robust},
	} {
		ctx, err := NewContext(params)
		if err != nil {
			t.Fatalf("NewContext(): %v", err)
		}
		testWotsSignThenVerify(ctx, t)
	}
}

func BenchmarkWotsSign(b *testing.B) {
	ctx := NewContextFromName("SPHINCS+-SHAKE-128s-robust")
	pad := ctx.newScratchPad()
	var addr address
	sig := make([]byte, ctx.wotsSigBytes)
	msg := testBytes(0, 16)
	seed := testBytes(16, 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.wotsSignInto(pad, msg, seed, seed, addr, sig)
	}
}

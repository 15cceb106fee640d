package sphincs

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// Returns the byte slice from, from+1, ..., from+n-1.
func testBytes(from, n int) []byte {
	ret := make([]byte, n)
	for i := 0; i < n; i++ {
		ret[i] = byte(from + i)
	}
	return ret
}

func testAddr(typ uint32, keyPair, chain, hash uint32) address {
	addr := SubTreeAddress{Layer: 1, Tree: 0x0123456789abcdef}.address()
	addr.setType(typ)
	addr.setKeyPair(keyPair)
	addr.setChain(chain)
	addr.setHash(hash)
	return addr
}

func TestPrfAddr(t *testing.T) {
	ctx := NewContextFromName("SPHINCS+-SHAKE-128s-robust")
	val := hex.EncodeToString(ctx.prfAddr(ctx.newScratchPad(),
		testAddr(ADDR_TYPE_WOTSPRF, 7, 3, 0), testBytes(0, 16),
		testBytes(16, 16)))
	if val != "d122321dff8c31a059888aafc6cb489a" {
		t.Fatalf("prfAddr() returned %s", val)
	}
}

func TestPrfMsg(t *testing.T) {
	ctx := NewContextFromName("SPHINCS+-SHAKE-128s-robust")
	val := hex.EncodeToString(ctx.prfMsg(ctx.newScratchPad(),
		testBytes(32, 16), testBytes(48, 16), []byte("hello")))
	if val != "7295f6a543720b0826591b72d7372463" {
		t.Fatalf("prfMsg() returned %s", val)
	}
}

func testThash(ctx *Context, in []byte, addr address, expect string,
	t *testing.T) {
	out := make([]byte, ctx.p.N)
	ctx.thashInto(ctx.newScratchPad(), in, testBytes(0, 16), addr, out)
	val := hex.EncodeToString(out)
	if val != expect {
		t.Errorf("%s: thash on %d blocks is %s instead of %s", ctx.Name(),
			len(in)/int(ctx.p.N), val, expect)
	}
}

func TestThash(t *testing.T) {
	robust := NewContextFromName("SPHINCS+-SHAKE-128s-robust")
	simple := NewContextFromName("SPHINCS+-SHAKE-128s-simple")
	chainAddr := testAddr(ADDR_TYPE_WOTS, 7, 3, 5)
	pkAddr := testAddr(ADDR_TYPE_WOTSPK, 7, 0, 0)

	testThash(robust, testBytes(64, 16), chainAddr,
		"564e4ff9bf4e91cdae3da093f97363fd", t)
	testThash(simple, testBytes(64, 16), chainAddr,
		"6df1fb329f4f70440e3e938fe45c04ff", t)
	testThash(robust, testBytes(0, 48), pkAddr,
		"0c0d297ea9eebddfe18565b60f839ad5", t)
	testThash(simple, testBytes(0, 48), pkAddr,
		"4e1f4bd47abe0d6a6c365c5f5c4fb74b", t)
}

func TestThashInPlace(t *testing.T) {
	for _, name := range []string{
		"SPHINCS+-SHAKE-128s-robust",
		"SPHINCS+-SHAKE-128s-simple",
	} {
		ctx := NewContextFromName(name)
		pubSeed := testBytes(0, 16)
		addr := testAddr(ADDR_TYPE_WOTS, 7, 3, 5)
		expect := ctx.f(testBytes(64, 16), pubSeed, addr)
		buf := testBytes(64, 16)
		ctx.fInto(ctx.newScratchPad(), buf, pubSeed, addr, buf)
		if !bytes.Equal(buf, expect) {
			t.Errorf("%s: fInto() with overlapping in and out differs", name)
		}

		left, right := testBytes(1, 16), testBytes(17, 16)
		expect = ctx.h(left, right, pubSeed, addr)
		ctx.hInto(ctx.newScratchPad(), left, right, pubSeed, addr, right)
		if !bytes.Equal(right, expect) {
			t.Errorf("%s: hInto() with overlapping in and out differs", name)
		}
	}
}

func TestHashMessage(t *testing.T) {
	ctx := NewContextFromName("SPHINCS+-SHAKE-128s-robust")
	md, tree, leaf := ctx.hashMessage(ctx.newScratchPad(), testBytes(48, 16),
		testBytes(0, 16), testBytes(32, 16), []byte("hello"))
	if hex.EncodeToString(md) != "22296c24960243a63c9254ac7ae061a4a3c8426d49" {
		t.Errorf("hashMessage() returned md %x", md)
	}
	if tree != 0x19b26471b9f5cf {
		t.Errorf("hashMessage() returned tree %x", tree)
	}
	if leaf != 147 {
		t.Errorf("hashMessage() returned leaf %d", leaf)
	}
}

func TestSplitDigest(t *testing.T) {
	// SPHINCS+-SHAKE-256f uses all 64 bits of the tree index.
	ctx := NewContextFromName("SPHINCS+-SHAKE-256f-simple")
	digest := make([]byte, ctx.digestBytes)
	for i := range digest {
		digest[i] = 0xff
	}
	md, tree, leaf := ctx.splitDigest(digest)
	if len(md) != 40 {
		t.Errorf("md has length %d instead of 40", len(md))
	}
	if tree != 0xffffffffffffffff {
		t.Errorf("tree is %x instead of all ones", tree)
	}
	if leaf != 15 {
		t.Errorf("leaf is %d instead of 15", leaf)
	}

	ctx = NewContextFromName("SPHINCS+-SHAKE-128f-simple")
	digest = make([]byte, ctx.digestBytes)
	for i := range digest {
		digest[i] = 0xff
	}
	_, tree, leaf = ctx.splitDigest(digest)
	if tree != (1<<63)-1 {
		t.Errorf("tree is %x instead of 2^63-1", tree)
	}
	if leaf != 7 {
		t.Errorf("leaf is %d instead of 7", leaf)
	}
}

func BenchmarkThashRobust(b *testing.B) {
	benchmarkThash(NewContextFromName("SPHINCS+-SHAKE-128s-robust"), b)
}

func BenchmarkThashSimple(b *testing.B) {
	benchmarkThash(NewContextFromName("SPHINCS+-SHAKE-128s-simple"), b)
}

func benchmarkThash(ctx *Context, b *testing.B) {
	pad := ctx.newScratchPad()
	pubSeed := testBytes(0, 16)
	buf := testBytes(16, 16)
	addr := testAddr(ADDR_TYPE_WOTS, 0, 0, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.fInto(pad, buf, pubSeed, addr, buf)
	}
}

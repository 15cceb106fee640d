package sphincs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/itzmeanjan/sphincs/internal/kat"
)

func testKnownAnswers(name, path string, t *testing.T) {
	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	records, err := kat.ParseBytes(buf)
	if err != nil {
		t.Fatalf("%s: %v", path, err)
	}
	if len(records) == 0 {
		t.Fatalf("%s: no records", path)
	}

	ctx := NewContextFromName(name)
	for i, rec := range records {
		sk, pk, err := ctx.KeyGen(rec.SkSeed, rec.SkPrf, rec.PkSeed)
		if err != nil {
			t.Fatalf("%s #%d: KeyGen(): %v", name, i, err)
		}
		if !bytes.Equal(pk, rec.PublicKey()) ||
			!bytes.Equal(sk, rec.SecretKey()) {
			t.Fatalf("%s #%d: KeyGen() generated wrong keys", name, i)
		}

		sig, err := ctx.Sign(rec.Message(), sk, rec.Opt)
		if err != nil {
			t.Fatalf("%s #%d: Sign(): %v", name, i, err)
		}
		if !bytes.Equal(sig, rec.Sig) {
			t.Fatalf("%s #%d: Sign() generated wrong signature", name, i)
		}

		ok, err := ctx.Verify(rec.Message(), sig, pk)
		if !ok || err != nil {
			t.Fatalf("%s #%d: Verify() failed: %v", name, i, err)
		}
	}
}

func TestKnownAnswers(t *testing.T) {
	for _, name := range []string{
		"SPHINCS+-SHAKE-128f-robust",
		"SPHINCS+-SHAKE-128f-simple",
	} {
		testKnownAnswers(name, filepath.Join("testdata",
			katFileName(name)), t)
	}
}

// Returns the file name of the known answer tests of the named
// instance, eg. sphincs-shake-128f-robust.kat.
func katFileName(name string) string {
	return strings.ToLower(strings.Replace(name, "+", "", 1)) + ".kat"
}

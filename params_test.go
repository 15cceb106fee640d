package sphincs

import (
	"testing"
)

func TestNamedParamsSizes(t *testing.T) {
	sigSizes := map[string]uint32{
		"SPHINCS+-SHAKE-128s": 7856,
		"SPHINCS+-SHAKE-128f": 17088,
		"SPHINCS+-SHAKE-192s": 16224,
		"SPHINCS+-SHAKE-192f": 35664,
		"SPHINCS+-SHAKE-256s": 29792,
		"SPHINCS+-SHAKE-256f": 49856,
	}
	if len(ListNames()) != 12 {
		t.Fatalf("ListNames() has %d entries instead of 12", len(ListNames()))
	}
	for _, name := range ListNames() {
		params := ParamsFromName(name)
		if params == nil {
			t.Fatalf("ParamsFromName(%s) is nil", name)
		}
		if err := params.validate(); err != nil {
			t.Fatalf("%s: validate(): %v", name, err)
		}
		prefix := name[:len("SPHINCS+-SHAKE-128s")]
		if params.SignatureSize() != sigSizes[prefix] {
			t.Errorf("%s: SignatureSize() is %d instead of %d", name,
				params.SignatureSize(), sigSizes[prefix])
		}
		if params.PublicKeySize() != 2*params.N ||
			params.PrivateKeySize() != 4*params.N {
			t.Errorf("%s: wrong key sizes", name)
		}
		if params.LookupName() != name {
			t.Errorf("%s: LookupName() returned %s", name, params.LookupName())
		}
	}
}

func TestParamsFromNameReturnsCopy(t *testing.T) {
	params := ParamsFromName("SPHINCS+-SHAKE-128f-simple")
	params.N = 32
	if ParamsFromName("SPHINCS+-SHAKE-128f-simple").N != 16 {
		t.Fatalf("ParamsFromName() returned a reference into the registry")
	}
	if params.LookupName() != "" {
		t.Fatalf("Modified parameters still have a name")
	}
	if ParamsFromName("SPHINCS+-SHA2-128f-simple") != nil {
		t.Fatalf("ParamsFromName() found an unknown instance")
	}
	if NewContextFromName("XMSSMT-SHA2_20/2_256") != nil {
		t.Fatalf("NewContextFromName() found an unknown instance")
	}
}

func TestWotsLen(t *testing.T) {
	for _, tc := range []struct {
		n                uint32
		w                uint16
		len1, len2, len_ uint32
	}{
		{16, 16, 32, 3, 35},
		{24, 16, 48, 3, 51},
		{32, 16, 64, 3, 67},
		{16, 4, 64, 4, 68},
		{32, 4, 128, 5, 133},
		{16, 256, 16, 2, 18},
		{32, 256, 32, 2, 34},
	} {
		params := Params{N: tc.n, WotsW: tc.w}
		if params.WotsLen1() != tc.len1 || params.WotsLen2() != tc.len2 ||
			params.WotsLen() != tc.len_ {
			t.Errorf("n=%d w=%d: len1, len2, len = %d, %d, %d instead of "+
				"%d, %d, %d", tc.n, tc.w, params.WotsLen1(), params.WotsLen2(),
				params.WotsLen(), tc.len1, tc.len2, tc.len_)
		}
	}
}

func TestMessageDigestSize(t *testing.T) {
	for _, tc := range []struct {
		name string
		m    uint32
	}{
		{"SPHINCS+-SHAKE-128s-robust", 30},
		{"SPHINCS+-SHAKE-128f-robust", 34},
		{"SPHINCS+-SHAKE-192s-robust", 39},
		{"SPHINCS+-SHAKE-192f-robust", 42},
		{"SPHINCS+-SHAKE-256s-robust", 47},
		{"SPHINCS+-SHAKE-256f-robust", 49},
	} {
		params := ParamsFromName(tc.name)
		if params.MessageDigestSize() != tc.m {
			t.Errorf("%s: MessageDigestSize() is %d instead of %d",
				tc.name, params.MessageDigestSize(), tc.m)
		}
	}
}

func TestInvalidParams(t *testing.T) {
	valid := Params{16, 8, 2, 4, 5, 16, Robust}
	if _, err := NewContext(valid); err != nil {
		t.Fatalf("NewContext(%v): %v", valid, err)
	}
	for _, tweak := range []func(p *Params){
		func(p *Params) { p.N = 20 },
		func(p *Params) { p.WotsW = 8 },
		func(p *Params) { p.D = 3 },
		func(p *Params) { p.D = 0 },
		func(p *Params) { p.FullHeight, p.D = 64, 1 },
		func(p *Params) { p.FullHeight, p.D = 96, 3 },
		func(p *Params) { p.ForsHeight = 0 },
		func(p *Params) { p.ForsHeight = 25 },
		func(p *Params) { p.ForsTrees, p.ForsHeight = 512, 24 },
		func(p *Params) { p.Variant = 2 },
	} {
		params := valid
		tweak(&params)
		if _, err := NewContext(params); err == nil {
			t.Errorf("NewContext(%v) should have failed", params)
		}
	}
}

func TestVariantString(t *testing.T) {
	if Robust.String() != "robust" || Simple.String() != "simple" {
		t.Fatalf("Variant.String() is wrong")
	}
}

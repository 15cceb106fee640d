package sphincs

import (
	"fmt"
)

// Which tweakable hash construction to use.
type Variant uint8

const (
	// Inputs of the tweakable hash are XORed with bitmasks derived from
	// the public seed and the address.
	Robust Variant = 0

	// Inputs are hashed as-is.
	Simple Variant = 1
)

func (v Variant) String() string {
	switch v {
	case Robust:
		return "robust"
	case Simple:
		return "simple"
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// Parameters of a SPHINCS+-SHAKE instance
type Params struct {
	N          uint32 // security parameter: length of hashes in bytes
	FullHeight uint32 // height of the hypertree
	D          uint32 // number of layers of the hypertree
	ForsHeight uint32 // height of each FORS tree
	ForsTrees  uint32 // number of FORS trees

	// WOTS+ Winternitz parameter.  Only 4, 16 and 256 are supported.
	WotsW uint16

	Variant Variant
}

// Entry in the registry of algorithms
type regEntry struct {
	name   string // name, eg. SPHINCS+-SHAKE-128s-robust
	params Params // parameters of the algorithm
}

// Returns parameters for the named SPHINCS+ instance (and nil if there is no
// such algorithm).
func ParamsFromName(name string) *Params {
	entry, ok := registryNameLut[name]
	if ok {
		ret := entry.params
		return &ret
	}
	return nil
}

// Looks up the name of the instance with these parameters.  Returns
// an empty string if it has no name.
func (params *Params) LookupName() string {
	for _, entry := range registry {
		if entry.params == *params {
			return entry.name
		}
	}
	return ""
}

// Returns the 2log of the Winternitz parameter
func (params *Params) WotsLogW() uint8 {
	switch params.WotsW {
	case 4:
		return 2
	case 16:
		return 4
	case 256:
		return 8
	default:
		panic("Only WotsW=4,16,256 are supported")
	}
}

// Returns the number of main WOTS+ chains
func (params *Params) WotsLen1() uint32 {
	logW := uint32(params.WotsLogW())
	return (8*params.N + logW - 1) / logW
}

// Returns the number of WOTS+ checksum chains
func (params *Params) WotsLen2() uint32 {
	// smallest len2 with w^len2 > len1 * (w-1), that is
	// floor(log_w(len1 * (w-1))) + 1.
	maxSum := uint64(params.WotsLen1()) * uint64(params.WotsW-1)
	var len2 uint32 = 1
	capacity := uint64(params.WotsW)
	for capacity <= maxSum {
		capacity *= uint64(params.WotsW)
		len2++
	}
	return len2
}

// Returns the total number of WOTS+ chains
func (params *Params) WotsLen() uint32 {
	return params.WotsLen1() + params.WotsLen2()
}

// Returns the size of a WOTS+ signature
func (params *Params) WotsSignatureSize() uint32 {
	return params.WotsLen() * params.N
}

// Returns the height of a single subtree of the hypertree
func (params *Params) TreeHeight() uint32 {
	return params.FullHeight / params.D
}

// Returns the size of a FORS signature
func (params *Params) ForsSignatureSize() uint32 {
	return params.ForsTrees * (params.ForsHeight + 1) * params.N
}

// Returns the size of the signature made by the hypertree
func (params *Params) HypertreeSignatureSize() uint32 {
	return (params.FullHeight + params.D*params.WotsLen()) * params.N
}

// Returns the size of a SPHINCS+ signature
func (params *Params) SignatureSize() uint32 {
	return params.N + params.ForsSignatureSize() + params.HypertreeSignatureSize()
}

// Returns the size of a public key: PK.seed || PK.root
func (params *Params) PublicKeySize() uint32 {
	return 2 * params.N
}

// Returns the size of a private key: SK.seed || SK.prf || PK.seed || PK.root
func (params *Params) PrivateKeySize() uint32 {
	return 4 * params.N
}

// Returns the number of bytes of the message digest that select
// the FORS leaves.
func (params *Params) ForsMessageSize() uint32 {
	return (params.ForsTrees*params.ForsHeight + 7) / 8
}

// Returns the number of bits of the index of the bottom subtree.
func (params *Params) treeBits() uint32 {
	return params.FullHeight - params.TreeHeight()
}

// Returns the number of bytes of the message digest holding the index
// of the bottom subtree.
func (params *Params) treeIdxBytes() uint32 {
	return (params.treeBits() + 7) / 8
}

// Returns the number of bytes of the message digest holding the index
// of the leaf within the bottom subtree.
func (params *Params) leafIdxBytes() uint32 {
	return (params.TreeHeight() + 7) / 8
}

// Returns the length of the output of H_msg
func (params *Params) MessageDigestSize() uint32 {
	return params.ForsMessageSize() + params.treeIdxBytes() + params.leafIdxBytes()
}

// Checks whether the parameters are supported.
func (params *Params) validate() error {
	if params.N != 16 && params.N != 24 && params.N != 32 {
		return fmt.Errorf("Only N=16,24,32 are supported")
	}
	if params.WotsW != 4 && params.WotsW != 16 && params.WotsW != 256 {
		return fmt.Errorf("Only WotsW=4,16,256 are supported")
	}
	if params.D == 0 || params.FullHeight%params.D != 0 {
		return fmt.Errorf("D does not divide FullHeight")
	}
	if params.TreeHeight() == 0 || params.TreeHeight() > 31 {
		return fmt.Errorf("FullHeight/D should be between 1 and 31")
	}
	if params.treeBits() > 64 {
		return fmt.Errorf("FullHeight - FullHeight/D should be at most 64")
	}
	if params.ForsHeight == 0 || params.ForsHeight > 24 {
		return fmt.Errorf("ForsHeight should be between 1 and 24")
	}
	if params.ForsTrees == 0 ||
		uint64(params.ForsTrees)<<params.ForsHeight > 1<<32 {
		return fmt.Errorf("ForsTrees << ForsHeight should fit in 32 bits")
	}
	if params.Variant != Robust && params.Variant != Simple {
		return fmt.Errorf("Unknown variant %v", params.Variant)
	}
	return nil
}

// List all named SPHINCS+ instances
func ListNames() (names []string) {
	names = make([]string, len(registry))
	for i, entry := range registry {
		names[i] = entry.name
	}
	return
}

// Registry of named SPHINCS+-SHAKE algorithms
var registry []regEntry = []regEntry{
	{"SPHINCS+-SHAKE-128s-robust", Params{16, 63, 7, 12, 14, 16, Robust}},
	{"SPHINCS+-SHAKE-128s-simple", Params{16, 63, 7, 12, 14, 16, Simple}},
	{"SPHINCS+-SHAKE-128f-robust", Params{16, 66, 22, 6, 33, 16, Robust}},
	{"SPHINCS+-SHAKE-128f-simple", Params{16, 66, 22, 6, 33, 16, Simple}},

	{"SPHINCS+-SHAKE-192s-robust", Params{24, 63, 7, 14, 17, 16, Robust}},
	{"SPHINCS+-SHAKE-192s-simple", Params{24, 63, 7, 14, 17, 16, Simple}},
	{"SPHINCS+-SHAKE-192f-robust", Params{24, 66, 22, 8, 33, 16, Robust}},
	{"SPHINCS+-SHAKE-192f-simple", Params{24, 66, 22, 8, 33, 16, Simple}},

	{"SPHINCS+-SHAKE-256s-robust", Params{32, 64, 8, 14, 22, 16, Robust}},
	{"SPHINCS+-SHAKE-256s-simple", Params{32, 64, 8, 14, 22, 16, Simple}},
	{"SPHINCS+-SHAKE-256f-robust", Params{32, 68, 17, 9, 35, 16, Robust}},
	{"SPHINCS+-SHAKE-256f-simple", Params{32, 68, 17, 9, 35, 16, Simple}},
}

var registryNameLut map[string]regEntry

// Initializes algorithm lookup tables.
func init() {
	log = &dummyLogger{}
	registryNameLut = make(map[string]regEntry)
	for _, entry := range registry {
		registryNameLut[entry.name] = entry
	}
}

// Go implementation of the SPHINCS+ stateless hash-based signature scheme
// instantiated with SHAKE256, in both its robust and simple variant, as
// described in the round 3.1 submission https://sphincs.org/
//
// Contains majority of the API
package sphincs

import (
	"crypto/rand"
	"crypto/subtle"
	"time"
)

// SPHINCS+ private key
type PrivateKey struct {
	ctx     *Context // context, which contains algorithm parameters.
	skSeed  []byte
	skPrf   []byte
	pubSeed []byte
	root    []byte // root node of the hypertree
}

// SPHINCS+ public key
type PublicKey struct {
	ctx     *Context // context which contains algorithm parameters
	pubSeed []byte
	root    []byte // root node of the hypertree
}

// Represents a SPHINCS+ signature
type Signature struct {
	ctx     *Context // context which contains algorithm parameter
	drv     []byte   // digest randomized value (R)
	forsSig []byte   // FORS signature on the message digest

	// The hypertree signature consists of several barebones XMSS
	// signatures.  sigs[0] signs the FORS public key, sigs[1] signs the
	// root of the subtree for sigs[0], ... sigs[d-1] signs the root of
	// the subtree for sigs[d-2].
	sigs []subTreeSig
}

// Represents a signature made by a subtree. This is basically
// an XMSS signature without all the decorations.
type subTreeSig struct {
	wotsSig  []byte
	authPath []byte
}

// Generates a SPHINCS+ public/private keypair from fresh randomness.
func (ctx *Context) GenerateKeyPair() (*PrivateKey, *PublicKey, Error) {
	pubSeed := make([]byte, ctx.p.N)
	skSeed := make([]byte, ctx.p.N)
	skPrf := make([]byte, ctx.p.N)
	_, err := rand.Read(pubSeed)
	if err != nil {
		return nil, nil, wrapErrorf(err, "crypto.rand.Read()")
	}
	_, err = rand.Read(skSeed)
	if err != nil {
		return nil, nil, wrapErrorf(err, "crypto.rand.Read()")
	}
	_, err = rand.Read(skPrf)
	if err != nil {
		return nil, nil, wrapErrorf(err, "crypto.rand.Read()")
	}
	return ctx.Derive(pubSeed, skSeed, skPrf)
}

// Derives a SPHINCS+ public/private keypair from the given seeds.
// pubSeed, skSeed and skPrf should be secret random ctx.p.N length
// byte slices.
func (ctx *Context) Derive(pubSeed, skSeed, skPrf []byte) (
	*PrivateKey, *PublicKey, Error) {
	if err := checkLengths(
		lengthCheck{"pubSeed", pubSeed, ctx.p.N},
		lengthCheck{"skSeed", skSeed, ctx.p.N},
		lengthCheck{"skPrf", skPrf, ctx.p.N},
	); err != nil {
		return nil, nil, err
	}

	start := time.Now()
	pad := ctx.newScratchPad()
	sk := PrivateKey{
		ctx:     ctx,
		skSeed:  append([]byte(nil), skSeed...),
		skPrf:   append([]byte(nil), skPrf...),
		pubSeed: append([]byte(nil), pubSeed...),
		root:    ctx.htRoot(pad, skSeed, pubSeed),
	}
	log.Logf("Computed root of %s hypertree in %v", ctx.Name(),
		time.Since(start))

	return &sk, sk.PublicKey(), nil
}

// Derives the secret key sk_seed || sk_prf || pk_seed || pk_root and
// the public key pk_seed || pk_root from the given seeds.
func (ctx *Context) KeyGen(skSeed, skPrf, pubSeed []byte) (
	sk, pk []byte, err Error) {
	priv, pub, err := ctx.Derive(pubSeed, skSeed, skPrf)
	if err != nil {
		return nil, nil, err
	}
	sk, _ = priv.MarshalBinary()
	pk, _ = pub.MarshalBinary()
	return
}

// Signs msg with the secret key sk (as returned by KeyGen) using the
// given n-byte optRand for randomization.  Returns the signature in
// the format of the reference implementation (without the message).
func (ctx *Context) Sign(msg, sk, optRand []byte) ([]byte, Error) {
	if err := checkLengths(
		lengthCheck{"secret key", sk, ctx.skBytes},
		lengthCheck{"optRand", optRand, ctx.p.N},
	); err != nil {
		return nil, err
	}
	priv, err := ctx.PrivateKeyFromBytes(sk)
	if err != nil {
		return nil, err
	}
	sig, err := priv.SignWithOptRand(msg, optRand)
	if err != nil {
		return nil, err
	}
	ret, _ := sig.MarshalBinary()
	return ret, nil
}

// Checks whether sig is a valid signature on msg for the public key pk
// (as returned by KeyGen).  Returns an error only if sig or pk is
// malformed.
func (ctx *Context) Verify(msg, sig, pk []byte) (bool, Error) {
	if err := checkLengths(
		lengthCheck{"signature", sig, ctx.sigBytes},
		lengthCheck{"public key", pk, ctx.pkBytes},
	); err != nil {
		return false, err
	}
	pub, err := ctx.PublicKeyFromBytes(pk)
	if err != nil {
		return false, err
	}
	parsedSig, err := ctx.SignatureFromBytes(sig)
	if err != nil {
		return false, err
	}
	return pub.Verify(parsedSig, msg)
}

// Returns the public key that belongs to this private key.
func (sk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{
		ctx:     sk.ctx,
		pubSeed: sk.pubSeed,
		root:    sk.root,
	}
}

// Signs the given message with fresh randomness.
func (sk *PrivateKey) Sign(msg []byte) (*Signature, Error) {
	optRand := make([]byte, sk.ctx.p.N)
	if _, err := rand.Read(optRand); err != nil {
		return nil, wrapErrorf(err, "crypto.rand.Read()")
	}
	return sk.SignWithOptRand(msg, optRand)
}

// Signs the given message without additional randomness.  Signing the
// same message twice yields the same signature.
func (sk *PrivateKey) SignDeterministic(msg []byte) (*Signature, Error) {
	return sk.SignWithOptRand(msg, sk.pubSeed)
}

// Signs the given message using the n-byte optRand to randomize the
// message digest.
func (sk *PrivateKey) SignWithOptRand(msg, optRand []byte) (
	*Signature, Error) {
	ctx := sk.ctx
	if err := checkLengths(
		lengthCheck{"optRand", optRand, ctx.p.N},
	); err != nil {
		return nil, err
	}

	start := time.Now()
	pad := ctx.newScratchPad()
	buf := make([]byte, ctx.sigBytes)
	sig := ctx.signatureFromBuf(buf)

	copy(sig.drv, ctx.prfMsg(pad, sk.skPrf, optRand, msg))
	md, tree, leaf := ctx.hashMessage(pad, sig.drv, sk.pubSeed, sk.root, msg)

	forsPk := make([]byte, ctx.p.N)
	ctx.forsSignInto(pad, md, sk.skSeed, sk.pubSeed,
		forsTreeAddr(tree, leaf), sig.forsSig, forsPk)
	ctx.htSignInto(pad, forsPk, sk.skSeed, sk.pubSeed, tree, leaf,
		buf[ctx.p.N+ctx.forsSigBytes:])

	log.Logf("Signed with %s (tree %d, leaf %d) in %v", ctx.Name(), tree,
		leaf, time.Since(start))
	return sig, nil
}

// Check whether the sig is a valid signature of this public key
// for the given message.  Returns false without an error if the
// signature is invalid.
func (pk *PublicKey) Verify(sig *Signature, msg []byte) (bool, Error) {
	ctx := pk.ctx
	if sig.ctx.p != ctx.p {
		return false, errorf("Signature is for %s instead of %s",
			sig.ctx.Name(), ctx.Name())
	}

	pad := ctx.newScratchPad()
	md, tree, leaf := ctx.hashMessage(pad, sig.drv, pk.pubSeed, pk.root, msg)

	forsPk := make([]byte, ctx.p.N)
	ctx.forsPkFromSigInto(pad, sig.forsSig, md, pk.pubSeed,
		forsTreeAddr(tree, leaf), forsPk)

	root := make([]byte, ctx.p.N)
	ctx.htPkFromSigInto(pad, sig.htSig(), forsPk, pk.pubSeed, tree, leaf,
		root)

	return subtle.ConstantTimeCompare(root, pk.root) == 1, nil
}

// Returns the hypertree signature: the concatenation of the subtree
// signatures.
func (sig *Signature) htSig() []byte {
	ret := make([]byte, 0, sig.ctx.htSigBytes)
	for _, stSig := range sig.sigs {
		ret = append(ret, stSig.wotsSig...)
		ret = append(ret, stSig.authPath...)
	}
	return ret
}

// Creates a Signature whose parts are slices of buf, which should have
// length ctx.sigBytes.
func (ctx *Context) signatureFromBuf(buf []byte) *Signature {
	n := ctx.p.N
	sig := Signature{
		ctx:     ctx,
		drv:     buf[:n],
		forsSig: buf[n : n+ctx.forsSigBytes],
		sigs:    make([]subTreeSig, ctx.p.D),
	}
	stOff := n + ctx.forsSigBytes
	stLen := ctx.wotsSigBytes + n*ctx.treeHeight
	for i := range sig.sigs {
		off := stOff + uint32(i)*stLen
		sig.sigs[i] = subTreeSig{
			wotsSig:  buf[off : off+ctx.wotsSigBytes],
			authPath: buf[off+ctx.wotsSigBytes : off+stLen],
		}
	}
	return &sig
}

// Returns representation of signature as accepted by the reference
// implementation (without the message).
// Will never return an error.
func (sig *Signature) MarshalBinary() ([]byte, error) {
	ret := make([]byte, 0, sig.ctx.sigBytes)
	ret = append(ret, sig.drv...)
	ret = append(ret, sig.forsSig...)
	ret = append(ret, sig.htSig()...)
	return ret, nil
}

// Returns sk_seed || sk_prf || pk_seed || pk_root.
// Will never return an error.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	ret := make([]byte, 0, sk.ctx.skBytes)
	ret = append(ret, sk.skSeed...)
	ret = append(ret, sk.skPrf...)
	ret = append(ret, sk.pubSeed...)
	ret = append(ret, sk.root...)
	return ret, nil
}

// Returns pk_seed || pk_root.
// Will never return an error.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	ret := make([]byte, 0, pk.ctx.pkBytes)
	ret = append(ret, pk.pubSeed...)
	ret = append(ret, pk.root...)
	return ret, nil
}

// Parses a signature as returned by Signature.MarshalBinary().
func (ctx *Context) SignatureFromBytes(buf []byte) (*Signature, Error) {
	if err := checkLengths(
		lengthCheck{"signature", buf, ctx.sigBytes},
	); err != nil {
		return nil, err
	}
	return ctx.signatureFromBuf(append([]byte(nil), buf...)), nil
}

// Parses a private key as returned by PrivateKey.MarshalBinary().
// The root stored in the key is not checked.
func (ctx *Context) PrivateKeyFromBytes(buf []byte) (*PrivateKey, Error) {
	if err := checkLengths(
		lengthCheck{"private key", buf, ctx.skBytes},
	); err != nil {
		return nil, err
	}
	n := ctx.p.N
	buf = append([]byte(nil), buf...)
	return &PrivateKey{
		ctx:     ctx,
		skSeed:  buf[:n],
		skPrf:   buf[n : 2*n],
		pubSeed: buf[2*n : 3*n],
		root:    buf[3*n:],
	}, nil
}

// Parses a public key as returned by PublicKey.MarshalBinary().
func (ctx *Context) PublicKeyFromBytes(buf []byte) (*PublicKey, Error) {
	if err := checkLengths(
		lengthCheck{"public key", buf, ctx.pkBytes},
	); err != nil {
		return nil, err
	}
	n := ctx.p.N
	buf = append([]byte(nil), buf...)
	return &PublicKey{
		ctx:     ctx,
		pubSeed: buf[:n],
		root:    buf[n:],
	}, nil
}

func (sk *PrivateKey) Context() *Context {
	return sk.ctx
}

func (pk *PublicKey) Context() *Context {
	return pk.ctx
}

func (sig *Signature) Context() *Context {
	return sig.ctx
}

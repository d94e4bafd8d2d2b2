package chaumpedersen

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/thechriswalker/go-electionguard/crypto/elgamal"
	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/hash"
	"github.com/thechriswalker/go-electionguard/crypto/nonces"
	"github.com/thechriswalker/go-electionguard/crypto/precompute"
)

// ErrInvalidPlaintext is returned when asked to prove a plaintext other than 0 or 1.
var ErrInvalidPlaintext = errors.New("Disjunctive proof plaintext must be 0 or 1")

const disjunctiveLabel = "disjoint-chaum-pedersen-proof"

// DisjunctiveProof shows a ciphertext (alpha, beta) encrypts 0 or 1 without
// revealing which. It is an OR of two Chaum-Pedersen proofs: the branch for the
// real plaintext is computed honestly and the other is simulated by choosing its
// challenge first. The challenges must sum to the Fiat-Shamir hash
//
//	c = H(q, alpha, beta, a0, b0, a1, b1)
//
// which the prover can only satisfy with at most one simulated branch.
type DisjunctiveProof struct {
	ProofZeroPad       *group.ElementModP `json:"proof_zero_pad"`       // a0
	ProofZeroData      *group.ElementModP `json:"proof_zero_data"`      // b0
	ProofOnePad        *group.ElementModP `json:"proof_one_pad"`        // a1
	ProofOneData       *group.ElementModP `json:"proof_one_data"`       // b1
	ProofZeroChallenge *group.ElementModQ `json:"proof_zero_challenge"` // c0
	ProofOneChallenge  *group.ElementModQ `json:"proof_one_challenge"`  // c1
	Challenge          *group.ElementModQ `json:"challenge"`            // c
	ProofZeroResponse  *group.ElementModQ `json:"proof_zero_response"`  // v0
	ProofOneResponse   *group.ElementModQ `json:"proof_one_response"`   // v1
}

// commitments are the exponents and powers a proof is built from. u is the real
// branch commitment exponent, v and w the simulated branch response and
// challenge seeds.
type commitments struct {
	u, v, w *group.ElementModQ
	gToU    *group.ElementModP // g^u
	kToU    *group.ElementModP // k^u
	gToV    *group.ElementModP // g^v
	gwkv    *group.ElementModP // g^w * k^v
}

// NewDisjunctiveProof proves ct = (g^r, g^plaintext * k^r) with fresh random
// commitments.
func NewDisjunctiveProof(ct *elgamal.Ciphertext, r *group.ElementModQ, k *group.ElementModP, q *group.ElementModQ, plaintext uint64) (*DisjunctiveProof, error) {
	if plaintext > 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlaintext, plaintext)
	}
	u, v, w := group.RandQ(), group.RandQ(), group.RandQ()
	kToV := group.PowModP(k, v)
	return newDisjunctive(ct, r, q, plaintext, &commitments{
		u: u, v: v, w: w,
		gToU: group.GPowP(u),
		kToU: group.PowModP(k, u),
		gToV: group.GPowP(v),
		gwkv: group.MulModP(group.GPowP(w), kToV),
	}), nil
}

// NewDisjunctiveProofPrecomputed proves a ciphertext made from unit.Triple1()
// without exponentiating G or the public key: triple 2 is the real branch and the
// quadruple the simulated one.
func NewDisjunctiveProofPrecomputed(ct *elgamal.Ciphertext, unit *precompute.TwoTriplesAndAQuadruple, q *group.ElementModQ, plaintext uint64) (*DisjunctiveProof, error) {
	if plaintext > 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlaintext, plaintext)
	}
	t2, quad := unit.Triple2(), unit.Quadruple()
	return newDisjunctive(ct, unit.Triple1().Exp(), q, plaintext, &commitments{
		u: t2.Exp(), v: quad.Exp1(), w: quad.Exp2(),
		gToU: t2.GToExp(),
		kToU: t2.PubkeyToExp(),
		gToV: quad.GToExp1(),
		gwkv: quad.GToExp2MulPubkeyToExp1(),
	}), nil
}

func newDisjunctive(ct *elgamal.Ciphertext, r, q *group.ElementModQ, plaintext uint64, cm *commitments) *DisjunctiveProof {
	alpha, beta := ct.Pad, ct.Data
	p := &DisjunctiveProof{}
	if plaintext == 0 {
		p.ProofZeroPad, p.ProofZeroData = cm.gToU, cm.kToU
		p.ProofOnePad, p.ProofOneData = cm.gToV, cm.gwkv
	} else {
		p.ProofZeroPad, p.ProofZeroData = cm.gToV, cm.gwkv
		p.ProofOnePad, p.ProofOneData = cm.gToU, cm.kToU
	}
	p.Challenge = hash.HashElems(q, alpha, beta, p.ProofZeroPad, p.ProofZeroData, p.ProofOnePad, p.ProofOneData)
	if plaintext == 0 {
		p.ProofZeroChallenge = group.SubModQ(p.Challenge, cm.w)
		p.ProofOneChallenge = cm.w
		p.ProofZeroResponse = group.APlusBCModQ(cm.u, p.ProofZeroChallenge, r)
		p.ProofOneResponse = group.APlusBCModQ(cm.v, cm.w, r)
	} else {
		p.ProofZeroChallenge = group.SubFromQ(cm.w)
		p.ProofOneChallenge = group.AddModQ(p.Challenge, cm.w)
		p.ProofZeroResponse = group.APlusBCModQ(cm.v, p.ProofZeroChallenge, r)
		p.ProofOneResponse = group.APlusBCModQ(cm.u, p.ProofOneChallenge, r)
	}
	return p
}

// NewDisjunctiveProofSeeded is deterministic: the same seed and inputs always
// give the same proof.
func NewDisjunctiveProofSeeded(ct *elgamal.Ciphertext, r *group.ElementModQ, k *group.ElementModP, q *group.ElementModQ, seed *group.ElementModQ, plaintext uint64) (*DisjunctiveProof, error) {
	alpha, beta := ct.Pad, ct.Data
	n := nonces.New(seed, disjunctiveLabel)
	p := &DisjunctiveProof{}
	switch plaintext {
	case 0:
		c1, v1, u0 := n.Get(0), n.Get(1), n.Get(2)
		p.ProofZeroPad = group.GPowP(u0)
		p.ProofZeroData = group.PowModP(k, u0)
		p.ProofOnePad = group.MulModP(group.GPowP(v1), group.PowModP(alpha, group.SubFromQ(c1)))
		p.ProofOneData = group.MulModP(group.PowModP(k, v1), group.GPowP(c1), group.PowModP(beta, group.SubFromQ(c1)))
		p.Challenge = hash.HashElems(q, alpha, beta, p.ProofZeroPad, p.ProofZeroData, p.ProofOnePad, p.ProofOneData)
		p.ProofZeroChallenge = group.SubModQ(p.Challenge, c1)
		p.ProofOneChallenge = c1
		p.ProofZeroResponse = group.APlusBCModQ(u0, p.ProofZeroChallenge, r)
		p.ProofOneResponse = v1
	case 1:
		c0, v0, u1 := n.Get(0), n.Get(1), n.Get(2)
		p.ProofZeroPad = group.MulModP(group.GPowP(v0), group.PowModP(alpha, group.SubFromQ(c0)))
		p.ProofZeroData = group.MulModP(group.PowModP(k, v0), group.PowModP(beta, group.SubFromQ(c0)))
		p.ProofOnePad = group.GPowP(u1)
		p.ProofOneData = group.PowModP(k, u1)
		p.Challenge = hash.HashElems(q, alpha, beta, p.ProofZeroPad, p.ProofZeroData, p.ProofOnePad, p.ProofOneData)
		p.ProofZeroChallenge = c0
		p.ProofOneChallenge = group.SubModQ(p.Challenge, c0)
		p.ProofZeroResponse = v0
		p.ProofOneResponse = group.APlusBCModQ(u1, p.ProofOneChallenge, r)
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlaintext, plaintext)
	}
	return p, nil
}

// Verify checks the proof for ciphertext ct under public key k with extended
// base hash q. Every failed check is named in the returned error.
func (p *DisjunctiveProof) Verify(ct *elgamal.Ciphertext, k *group.ElementModP, q *group.ElementModQ) error {
	c := newChecks("disjunctive")
	if p == nil {
		c.require(false, "proof is missing")
		return c.err()
	}
	if ct == nil {
		ct = &elgamal.Ciphertext{}
	}
	alpha, beta := ct.Pad, ct.Data
	structural := c.residues(
		"alpha", alpha, "beta", beta,
		"a0", p.ProofZeroPad, "b0", p.ProofZeroData,
		"a1", p.ProofOnePad, "b1", p.ProofOneData,
	)
	structural = c.inBounds(
		"c0", p.ProofZeroChallenge, "c1", p.ProofOneChallenge, "c", p.Challenge,
		"v0", p.ProofZeroResponse, "v1", p.ProofOneResponse,
	) && structural
	structural = c.require(k.IsValidResidue(), "public key is not a valid residue") && structural
	if !structural {
		return c.err()
	}

	c0, c1, v0, v1 := p.ProofZeroChallenge, p.ProofOneChallenge, p.ProofZeroResponse, p.ProofOneResponse
	expected := hash.HashElems(q, alpha, beta, p.ProofZeroPad, p.ProofZeroData, p.ProofOnePad, p.ProofOneData)
	c.require(group.AddModQ(c0, c1).Equal(p.Challenge), "c0 + c1 != c")
	c.require(expected.Equal(p.Challenge), "c does not match the commitments")
	// g^v0 == a0 * alpha^c0
	c.require(group.GPowP(v0).Equal(group.MulModP(p.ProofZeroPad, group.PowModP(alpha, c0))), "g^v0 != a0 * alpha^c0")
	// g^v1 == a1 * alpha^c1
	c.require(group.GPowP(v1).Equal(group.MulModP(p.ProofOnePad, group.PowModP(alpha, c1))), "g^v1 != a1 * alpha^c1")
	// k^v0 == b0 * beta^c0
	c.require(group.PowModP(k, v0).Equal(group.MulModP(p.ProofZeroData, group.PowModP(beta, c0))), "k^v0 != b0 * beta^c0")
	// g^c1 * k^v1 == b1 * beta^c1
	c.require(group.MulModP(group.GPowP(c1), group.PowModP(k, v1)).Equal(group.MulModP(p.ProofOneData, group.PowModP(beta, c1))), "g^c1 * k^v1 != b1 * beta^c1")
	return c.err()
}

// IsValid is Verify reduced to a boolean, logging the reasons for a failure.
func (p *DisjunctiveProof) IsValid(ct *elgamal.Ciphertext, k *group.ElementModP, q *group.ElementModQ) bool {
	err := p.Verify(ct, k, q)
	if err == nil {
		return true
	}
	if p == nil {
		logInvalid("disjunctive", err, nil)
		return false
	}
	logInvalid("disjunctive", err, func(e *zerolog.Event) *zerolog.Event {
		return e.
			Str("a0", hexOrNil(p.ProofZeroPad)).
			Str("b0", hexOrNil(p.ProofZeroData)).
			Str("a1", hexOrNil(p.ProofOnePad)).
			Str("b1", hexOrNil(p.ProofOneData)).
			Str("c0", hexOrNil(p.ProofZeroChallenge)).
			Str("c1", hexOrNil(p.ProofOneChallenge)).
			Str("c", hexOrNil(p.Challenge)).
			Str("v0", hexOrNil(p.ProofZeroResponse)).
			Str("v1", hexOrNil(p.ProofOneResponse))
	})
	return false
}

package chaumpedersen

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/thechriswalker/go-electionguard/crypto/elgamal"
	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/hash"
	"github.com/thechriswalker/go-electionguard/crypto/nonces"
	"github.com/thechriswalker/go-electionguard/crypto/precompute"
)

const constantLabel = "constant-chaum-pedersen-proof"

// ConstantProof shows a ciphertext encrypts a publicly claimed constant L, for
// example a contest's total number of selections.
//
//	a = g^u, b = k^u, c = H(q, alpha, beta, a, b), v = u + c*r
type ConstantProof struct {
	Pad       *group.ElementModP `json:"pad"`  // a
	Data      *group.ElementModP `json:"data"` // b
	Challenge *group.ElementModQ `json:"challenge"`
	Response  *group.ElementModQ `json:"response"`
	Constant  uint64             `json:"constant"`
}

// NewConstantProof proves ct encrypts constant with nonce r. With a buffer for k
// that has a triple available, u and its powers come from the triple and the
// seed is not used, so the proof is no longer reproducible from the seed.
func NewConstantProof(ct *elgamal.Ciphertext, r *group.ElementModQ, k *group.ElementModP, seed, q *group.ElementModQ, constant uint64, buffer *precompute.Buffer) *ConstantProof {
	var u *group.ElementModQ
	var a, b *group.ElementModP
	if buffer != nil {
		if triple, ok := buffer.PopTripleFor(k); ok {
			log.Debug().Msg("constant proof using a precomputed triple, seed ignored")
			u, a, b = triple.Exp(), triple.GToExp(), triple.PubkeyToExp()
		}
	}
	if u == nil {
		u = nonces.New(seed, constantLabel).Get(0)
		a, b = group.GPowP(u), group.PowModP(k, u)
	}
	c := hash.HashElems(q, ct.Pad, ct.Data, a, b)
	return &ConstantProof{
		Pad:       a,
		Data:      b,
		Challenge: c,
		Response:  group.APlusBCModQ(u, c, r),
		Constant:  constant,
	}
}

// Verify checks the proof for ciphertext ct under public key k with extended
// base hash q. The proof's own Constant is what is proven; callers comparing
// against an expected value must check it themselves.
func (p *ConstantProof) Verify(ct *elgamal.Ciphertext, k *group.ElementModP, q *group.ElementModQ) error {
	c := newChecks("constant")
	if p == nil {
		c.require(false, "proof is missing")
		return c.err()
	}
	if ct == nil {
		ct = &elgamal.Ciphertext{}
	}
	alpha, beta := ct.Pad, ct.Data
	structural := c.residues("alpha", alpha, "beta", beta, "a", p.Pad, "b", p.Data)
	structural = c.inBounds("c", p.Challenge, "v", p.Response) && structural
	structural = c.require(k.IsValidResidue(), "public key is not a valid residue") && structural
	if !structural {
		return c.err()
	}

	ch, v := p.Challenge, p.Response
	c.require(hash.HashElems(q, alpha, beta, p.Pad, p.Data).Equal(ch), "c does not match the commitments")
	// g^v == a * alpha^c
	c.require(group.GPowP(v).Equal(group.MulModP(p.Pad, group.PowModP(alpha, ch))), "g^v != a * alpha^c")
	// g^(c*L) * k^v == b * beta^c
	cL := group.MulModQ(ch, group.ElementModQFromUint64(p.Constant))
	lhs := group.MulModP(group.GPowP(cL), group.PowModP(k, v))
	c.require(lhs.Equal(group.MulModP(p.Data, group.PowModP(beta, ch))), "g^(c*L) * k^v != b * beta^c")
	return c.err()
}

// IsValid is Verify reduced to a boolean, logging the reasons for a failure.
func (p *ConstantProof) IsValid(ct *elgamal.Ciphertext, k *group.ElementModP, q *group.ElementModQ) bool {
	err := p.Verify(ct, k, q)
	if err == nil {
		return true
	}
	if p == nil {
		logInvalid("constant", err, nil)
		return false
	}
	logInvalid("constant", err, func(e *zerolog.Event) *zerolog.Event {
		return e.
			Str("a", hexOrNil(p.Pad)).
			Str("b", hexOrNil(p.Data)).
			Str("c", hexOrNil(p.Challenge)).
			Str("v", hexOrNil(p.Response)).
			Uint64("constant", p.Constant)
	})
	return false
}

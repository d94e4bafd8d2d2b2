package chaumpedersen

import (
	"github.com/rs/zerolog"

	"github.com/thechriswalker/go-electionguard/crypto/elgamal"
	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/hash"
	"github.com/thechriswalker/go-electionguard/crypto/nonces"
)

const genericLabel = "generic-chaum-pedersen-proof"

// Proof is the general form: knowledge of s such that K = g^s and M = alpha^s.
// It shows a partial decryption M was made with the secret behind K.
//
//	a = g^u, b = alpha^u, c = H(q, alpha, beta, a, b, M), v = u + c*s
//
// and the verifier checks g^v == a * K^c, alpha^v == b * M^c.
type Proof struct {
	Pad       *group.ElementModP `json:"pad"`  // a
	Data      *group.ElementModP `json:"data"` // b
	Challenge *group.ElementModQ `json:"challenge"`
	Response  *group.ElementModQ `json:"response"`
}

// NewProof proves m = ct.Pad^s, deterministically from the seed.
func NewProof(ct *elgamal.Ciphertext, s *group.ElementModQ, m *group.ElementModP, seed, q *group.ElementModQ) *Proof {
	u := nonces.New(seed, genericLabel).Get(0)
	a := group.GPowP(u)
	b := group.PowModP(ct.Pad, u)
	c := hash.HashElems(q, ct.Pad, ct.Data, a, b, m)
	return &Proof{
		Pad:       a,
		Data:      b,
		Challenge: c,
		Response:  group.APlusBCModQ(u, c, s),
	}
}

// Verify checks m is ct.Pad raised to the secret behind k.
func (p *Proof) Verify(ct *elgamal.Ciphertext, k, m *group.ElementModP, q *group.ElementModQ) error {
	c := newChecks("generic")
	if p == nil {
		c.require(false, "proof is missing")
		return c.err()
	}
	if ct == nil {
		ct = &elgamal.Ciphertext{}
	}
	alpha := ct.Pad
	structural := c.residues("alpha", alpha, "k", k, "m", m, "a", p.Pad, "b", p.Data)
	structural = c.inBounds("c", p.Challenge, "v", p.Response) && structural
	if !structural {
		return c.err()
	}
	ch, v := p.Challenge, p.Response
	c.require(hash.HashElems(q, alpha, ct.Data, p.Pad, p.Data, m).Equal(ch), "c does not match the commitments")
	c.require(group.GPowP(v).Equal(group.MulModP(p.Pad, group.PowModP(k, ch))), "g^v != a * k^c")
	c.require(group.PowModP(alpha, v).Equal(group.MulModP(p.Data, group.PowModP(m, ch))), "alpha^v != b * m^c")
	return c.err()
}

// IsValid is Verify reduced to a boolean, logging the reasons for a failure.
func (p *Proof) IsValid(ct *elgamal.Ciphertext, k, m *group.ElementModP, q *group.ElementModQ) bool {
	err := p.Verify(ct, k, m, q)
	if err == nil {
		return true
	}
	if p == nil {
		logInvalid("generic", err, nil)
		return false
	}
	logInvalid("generic", err, func(e *zerolog.Event) *zerolog.Event {
		return e.
			Str("a", hexOrNil(p.Pad)).
			Str("b", hexOrNil(p.Data)).
			Str("c", hexOrNil(p.Challenge)).
			Str("v", hexOrNil(p.Response))
	})
	return false
}

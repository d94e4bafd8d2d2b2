package elgamal

import (
	"fmt"

	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/nonces"
)

// Threshold decryption building blocks.
//
// A secret s is shared as points on a degree t polynomial P with P(0) = s. Each
// guardian i holds P(i) and publishes Pad^P(i) for a ciphertext. Any t+1 of
// those combine with Lagrange coefficients into Pad^s, the shared secret that
// DecryptWithSharedSecret needs. Guardian indices are 1-based, 0 is the secret.

// Polynomial holds the coefficients c_0..c_t of a secret sharing polynomial.
type Polynomial struct {
	coefficients []*group.ElementModQ
}

// NewPolynomial derives the t+1 coefficients from a seed.
func NewPolynomial(seed *group.ElementModQ, t int) *Polynomial {
	return &Polynomial{coefficients: nonces.New(seed, "polynomial-coefficient").Take(uint64(t + 1))}
}

// NewPolynomialWithSecret is NewPolynomial with the constant term replaced.
func NewPolynomialWithSecret(secret, seed *group.ElementModQ, t int) *Polynomial {
	p := NewPolynomial(seed, t)
	p.coefficients[0] = secret
	return p
}

// Secret is P(0)
func (p *Polynomial) Secret() *group.ElementModQ {
	return p.coefficients[0]
}

// Degree is t, so t+1 points are needed to recover the secret.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Evaluate computes P(x) mod Q, working backwards from c_t with Horner's rule.
func (p *Polynomial) Evaluate(x uint64) *group.ElementModQ {
	bigX := group.ElementModQFromUint64(x)
	result := group.ZeroModQ()
	for n := len(p.coefficients) - 1; n >= 0; n-- {
		result = group.APlusBCModQ(p.coefficients[n], result, bigX)
	}
	return result
}

// Commitments are G^c_k for each coefficient. They can be published so that
// shares can be checked without revealing the polynomial.
func (p *Polynomial) Commitments() []*group.ElementModP {
	out := make([]*group.ElementModP, len(p.coefficients))
	for i, c := range p.coefficients {
		out[i] = group.GPowP(c)
	}
	return out
}

// VerifyShare checks G^share == prod_k commitments[k]^(x^k)
func VerifyShare(commitments []*group.ElementModP, x uint64, share *group.ElementModQ) bool {
	bigX := group.ElementModQFromUint64(x)
	xk := group.OneModQ()
	calc := group.OneModP()
	for _, c := range commitments {
		calc = group.MulModP(calc, group.PowModP(c, xk))
		xk = group.MulModQ(xk, bigX)
	}
	return calc.Equal(group.GPowP(share))
}

// LagrangeCoefficient is the product over the other indices j of j / (j - index)
// mod Q.
func LagrangeCoefficient(index uint64, indices []uint64) (*group.ElementModQ, error) {
	numerator := group.OneModQ()
	denominator := group.OneModQ()
	seen := false
	for _, j := range indices {
		if j == index {
			seen = true
			continue
		}
		bigJ := group.ElementModQFromUint64(j)
		numerator = group.MulModQ(numerator, bigJ)
		denominator = group.MulModQ(denominator, group.SubModQ(bigJ, group.ElementModQFromUint64(index)))
	}
	if !seen {
		return nil, fmt.Errorf("index %d is not one of %v", index, indices)
	}
	return group.DivModQ(numerator, denominator), nil
}

// CombinePartialDecryptions computes prod_i M_i^w_i where M_i is the partial
// decryption from guardian i and w_i its Lagrange coefficient over the indices
// present.
func CombinePartialDecryptions(partials map[uint64]*group.ElementModP) (*group.ElementModP, error) {
	if len(partials) == 0 {
		return nil, ErrEmptyInput
	}
	indices := make([]uint64, 0, len(partials))
	for i := range partials {
		if i == 0 {
			return nil, fmt.Errorf("guardian index 0 is reserved for the secret")
		}
		indices = append(indices, i)
	}
	result := group.OneModP()
	for _, i := range indices {
		w, err := LagrangeCoefficient(i, indices)
		if err != nil {
			return nil, err
		}
		result = group.MulModP(result, group.PowModP(partials[i], w))
	}
	return result, nil
}

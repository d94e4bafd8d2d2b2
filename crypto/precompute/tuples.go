package precompute

import (
	"github.com/thechriswalker/go-electionguard/crypto/group"
)

// Triple is a random exponent with G and the public key already raised to it.
type Triple struct {
	exp         *group.ElementModQ
	gToExp      *group.ElementModP
	pubkeyToExp *group.ElementModP
}

// NewTriple does the two exponentiations now.
func NewTriple(publicKey *group.ElementModP) *Triple {
	exp := group.RandQ()
	return &Triple{
		exp:         exp,
		gToExp:      group.GPowP(exp),
		pubkeyToExp: group.PowModP(publicKey, exp),
	}
}

// NewTripleFrom builds a triple from values computed elsewhere. No check is made
// that they are consistent.
func NewTripleFrom(exp *group.ElementModQ, gToExp, pubkeyToExp *group.ElementModP) *Triple {
	return &Triple{exp: exp, gToExp: gToExp, pubkeyToExp: pubkeyToExp}
}

func (t *Triple) Exp() *group.ElementModQ         { return t.exp }
func (t *Triple) GToExp() *group.ElementModP      { return t.gToExp }
func (t *Triple) PubkeyToExp() *group.ElementModP { return t.pubkeyToExp }

// Quadruple holds two exponents, G^exp1 and G^exp2 * K^exp1, which is the simulated
// branch commitment of a disjunctive proof.
type Quadruple struct {
	exp1                   *group.ElementModQ
	exp2                   *group.ElementModQ
	gToExp1                *group.ElementModP
	gToExp2MulPubkeyToExp1 *group.ElementModP
}

// NewQuadruple does the three exponentiations now.
func NewQuadruple(publicKey *group.ElementModP) *Quadruple {
	exp1 := group.RandQ()
	exp2 := group.RandQ()
	return &Quadruple{
		exp1:                   exp1,
		exp2:                   exp2,
		gToExp1:                group.GPowP(exp1),
		gToExp2MulPubkeyToExp1: group.MulModP(group.GPowP(exp2), group.PowModP(publicKey, exp1)),
	}
}

func (q *Quadruple) Exp1() *group.ElementModQ                   { return q.exp1 }
func (q *Quadruple) Exp2() *group.ElementModQ                   { return q.exp2 }
func (q *Quadruple) GToExp1() *group.ElementModP                { return q.gToExp1 }
func (q *Quadruple) GToExp2MulPubkeyToExp1() *group.ElementModP { return q.gToExp2MulPubkeyToExp1 }

// TwoTriplesAndAQuadruple is everything needed to encrypt a selection and prove
// it is 0 or 1 without any further exponentiation of G or the public key.
// Triple1 is the encryption nonce, Triple2 the real branch commitment and the
// Quadruple the simulated branch.
type TwoTriplesAndAQuadruple struct {
	triple1 *Triple
	triple2 *Triple
	quad    *Quadruple
}

func NewTwoTriplesAndAQuadruple(publicKey *group.ElementModP) *TwoTriplesAndAQuadruple {
	return &TwoTriplesAndAQuadruple{
		triple1: NewTriple(publicKey),
		triple2: NewTriple(publicKey),
		quad:    NewQuadruple(publicKey),
	}
}

func (u *TwoTriplesAndAQuadruple) Triple1() *Triple      { return u.triple1 }
func (u *TwoTriplesAndAQuadruple) Triple2() *Triple      { return u.triple2 }
func (u *TwoTriplesAndAQuadruple) Quadruple() *Quadruple { return u.quad }

package group

import (
	big "github.com/ncw/gmp"

	"github.com/thechriswalker/go-electionguard/crypto/random"
)

// All of these return new elements, the arguments are never modified.

/////////////////// mod P ///////////////////

// AddModP computes (a + b) mod P
func AddModP(a, b *ElementModP) *ElementModP {
	v := new(big.Int).Add(a.v, b.v)
	v.Mod(v, pInt)
	return &ElementModP{v: v}
}

// MulModP computes the product of all the elements mod P. Elements mod Q are
// used as they are, without reduction. The empty product is 1.
func MulModP(elems ...Element) *ElementModP {
	v := big.NewInt(1)
	for _, e := range elems {
		v.Mul(v, e.bigInt())
		v.Mod(v, pInt)
	}
	return &ElementModP{v: v}
}

// DivModP computes numerator * denominator^-1 mod P. The inverse is
// denominator^(P-2), which is well defined (zero) for a zero denominator.
func DivModP(numerator, denominator *ElementModP) *ElementModP {
	v := new(big.Int).Exp(denominator.v, pMinusTwo, pInt)
	v.Mul(v, numerator.v)
	v.Mod(v, pInt)
	return &ElementModP{v: v}
}

// PowModP computes base^exponent mod P. When the base is marked as a fixed base and
// the exponent is a scalar mod Q the per base table is used.
func PowModP(base *ElementModP, exponent Element) *ElementModP {
	if base.fixedBase {
		if q, ok := exponent.(*ElementModQ); ok && q.v.Sign() >= 0 && q.v.BitLen() <= 8*QBytes {
			if base.v.Cmp(gInt) == 0 {
				return &ElementModP{v: generatorTable().pow(q.v)}
			}
			return &ElementModP{v: fixedBaseTable(base).pow(q.v)}
		}
	}
	return &ElementModP{v: new(big.Int).Exp(base.v, exponent.bigInt(), pInt)}
}

// GPowP computes G^exponent mod P.
func GPowP(exponent Element) *ElementModP {
	return PowModP(constG, exponent)
}

/////////////////// mod Q ///////////////////

// AddModQ computes the sum of all elements mod Q. The empty sum is 0.
func AddModQ(elems ...*ElementModQ) *ElementModQ {
	v := new(big.Int)
	for _, e := range elems {
		v.Add(v, e.v)
	}
	v.Mod(v, qInt)
	return &ElementModQ{v: v}
}

// SubModQ computes (a - b) mod Q
func SubModQ(a, b *ElementModQ) *ElementModQ {
	v := new(big.Int).Sub(a.v, b.v)
	v.Mod(v, qInt)
	return &ElementModQ{v: v}
}

// MulModQ computes the product of all elements mod Q. The empty product is 1.
func MulModQ(elems ...*ElementModQ) *ElementModQ {
	v := big.NewInt(1)
	for _, e := range elems {
		v.Mul(v, e.v)
		v.Mod(v, qInt)
	}
	return &ElementModQ{v: v}
}

// DivModQ computes numerator * denominator^(Q-2) mod Q
func DivModQ(numerator, denominator *ElementModQ) *ElementModQ {
	v := new(big.Int).Exp(denominator.v, qMinusTwo, qInt)
	v.Mul(v, numerator.v)
	v.Mod(v, qInt)
	return &ElementModQ{v: v}
}

// PowModQ computes base^exponent mod Q
func PowModQ(base, exponent *ElementModQ) *ElementModQ {
	return &ElementModQ{v: new(big.Int).Exp(base.v, exponent.v, qInt)}
}

// SubFromQ computes (Q - a) mod Q, the additive inverse of a.
func SubFromQ(a *ElementModQ) *ElementModQ {
	v := new(big.Int).Sub(qInt, a.v)
	v.Mod(v, qInt)
	return &ElementModQ{v: v}
}

// NegateModQ is -a mod Q, the same as SubFromQ.
func NegateModQ(a *ElementModQ) *ElementModQ { return SubFromQ(a) }

// APlusBCModQ computes (a + b*c) mod Q
func APlusBCModQ(a, b, c *ElementModQ) *ElementModQ {
	v := new(big.Int).Mul(b.v, c.v)
	v.Add(v, a.v)
	v.Mod(v, qInt)
	return &ElementModQ{v: v}
}

/////////////////// random ///////////////////

// RandP returns a uniformly random element of [0, P).
func RandP() *ElementModP {
	return &ElementModP{v: random.Int(pInt)}
}

// RandQ returns a uniformly random element of [0, Q).
func RandQ() *ElementModQ {
	return &ElementModQ{v: random.Int(qInt)}
}

// RandQRange returns a uniformly random element of [min, Q).
func RandQRange(min uint64) *ElementModQ {
	lo := new(big.Int).SetUint64(min)
	width := new(big.Int).Sub(qInt, lo)
	v := random.Int(width)
	v.Add(v, lo)
	return &ElementModQ{v: v}
}

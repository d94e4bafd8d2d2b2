package group

import (
	"encoding/json"
	"errors"
	"testing"

	big "github.com/ncw/gmp"
	"github.com/stretchr/testify/require"
)

func TestParameters(t *testing.T) {
	require.Equal(t, 4096, pInt.BitLen())
	require.Equal(t, 256, qInt.BitLen())
	require.True(t, pInt.ProbablyPrime(20), "p is not prime")
	require.True(t, qInt.ProbablyPrime(20), "q is not prime")

	// P = Q*R + 1
	check := new(big.Int).Mul(qInt, rInt)
	check.Add(check, bigOne)
	require.Equal(t, 0, check.Cmp(pInt))

	// G generates the order Q subgroup
	require.NotEqual(t, 0, gInt.Cmp(bigOne))
	require.True(t, G().IsValidResidue())
	require.Equal(t, 0, new(big.Int).Exp(bigTwo, rInt, pInt).Cmp(gInt))
}

func TestBounds(t *testing.T) {
	_, err := NewElementModP(pInt)
	require.True(t, errors.Is(err, ErrOutOfBounds))
	_, err = NewElementModQ(qInt)
	require.True(t, errors.Is(err, ErrOutOfBounds))
	_, err = NewElementModQ(big.NewInt(-1))
	require.True(t, errors.Is(err, ErrOutOfBounds))
	_, err = ElementModQFromHex(P().Hex())
	require.True(t, errors.Is(err, ErrOutOfBounds))

	unchecked := UncheckedElementModP(pInt)
	require.False(t, unchecked.IsInBounds())

	max, err := NewElementModP(new(big.Int).Sub(pInt, bigOne))
	require.NoError(t, err)
	require.True(t, max.IsInBounds())

	_, err = ElementModPFromHex("not hex")
	require.Error(t, err)
	_, err = ElementModPFromHex("")
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 20; i++ {
		p := RandP()
		q := RandQ()

		require.Len(t, p.Bytes(), PBytes)
		require.Len(t, q.Bytes(), QBytes)

		p2, err := ElementModPFromHex(p.Hex())
		require.NoError(t, err)
		require.True(t, p.Equal(p2))
		p3, err := ElementModPFromBytes(p.Bytes())
		require.NoError(t, err)
		require.True(t, p.Equal(p3))

		q2, err := ElementModQFromHex(q.Hex())
		require.NoError(t, err)
		require.True(t, q.Equal(q2))
		q3, err := ElementModQFromBytes(q.Bytes())
		require.NoError(t, err)
		require.True(t, q.Equal(q3))
	}
	// small values keep their fixed width
	require.Len(t, OneModP().Bytes(), PBytes)
	require.Equal(t, "0000000000000000000000000000000000000000000000000000000000000002", TwoModQ().Hex())
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		P *ElementModP `json:"p"`
		Q *ElementModQ `json:"q"`
	}
	in := wrapper{P: GPowP(ElementModQFromUint64(42)), Q: ElementModQFromUint64(42)}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out wrapper
	require.NoError(t, json.Unmarshal(b, &out))
	require.True(t, in.P.Equal(out.P))
	require.True(t, in.Q.Equal(out.Q))

	bad := []byte(`{"p":"00","q":"` + P().Hex() + `"}`)
	require.Error(t, json.Unmarshal(bad, &out))
}

func TestArithmeticModQ(t *testing.T) {
	a := RandQ()
	b := RandQ()

	require.True(t, SubModQ(AddModQ(a, b), b).Equal(a))
	require.True(t, AddModQ(a, SubFromQ(a)).IsZero())
	require.True(t, SubFromQ(ZeroModQ()).IsZero())
	require.True(t, NegateModQ(b).Equal(SubFromQ(b)))
	require.True(t, AddModQ().IsZero())
	require.True(t, MulModQ().Equal(OneModQ()))

	// a + b*c
	c := RandQ()
	require.True(t, APlusBCModQ(a, b, c).Equal(AddModQ(a, MulModQ(b, c))))

	// division undoes multiplication
	if !b.IsZero() {
		require.True(t, DivModQ(MulModQ(a, b), b).Equal(a))
	}
	require.True(t, PowModQ(TwoModQ(), ElementModQFromUint64(10)).Equal(ElementModQFromUint64(1024)))

	u, ok := ElementModQFromUint64(12345).Uint64()
	require.True(t, ok)
	require.Equal(t, uint64(12345), u)
	_, ok = SubFromQ(OneModQ()).Uint64()
	require.False(t, ok)
}

func TestArithmeticModP(t *testing.T) {
	a := GPowP(RandQ())
	b := GPowP(RandQ())

	require.True(t, DivModP(MulModP(a, b), b).Equal(a))
	require.True(t, MulModP().Equal(OneModP()))
	require.True(t, AddModP(OneModP(), OneModP()).Equal(TwoModP()))

	// mixing P and Q elements in a product uses the Q value as is
	two := ElementModQFromUint64(2)
	require.True(t, MulModP(two, two).Equal(ElementModPFromUint64(4)))

	// g^a * g^b = g^(a+b)
	x, y := RandQ(), RandQ()
	require.True(t, MulModP(GPowP(x), GPowP(y)).Equal(GPowP(AddModQ(x, y))))

	// G^Q == 1
	require.True(t, PowModP(G(), UncheckedElementModQ(qInt)).Equal(OneModP()))
}

func TestFixedBaseMatchesExp(t *testing.T) {
	base := GPowP(RandQ())
	fixed := base.WithFixedBase(true)
	require.True(t, fixed.IsFixedBase())
	require.False(t, base.IsFixedBase())

	exponents := []*ElementModQ{ZeroModQ(), OneModQ(), TwoModQ(), SubFromQ(OneModQ()), RandQ(), RandQ()}
	for _, e := range exponents {
		plain := new(big.Int).Exp(base.v, e.v, pInt)
		require.Equal(t, 0, PowModP(fixed, e).v.Cmp(plain))
		require.Equal(t, 0, PowModP(base, e).v.Cmp(plain))

		g := new(big.Int).Exp(gInt, e.v, pInt)
		require.Equal(t, 0, GPowP(e).v.Cmp(g))
	}
	// a P exponent is never table driven but must still agree
	e := RandP()
	require.True(t, PowModP(fixed, e).Equal(PowModP(base, e)))
}

func TestResidues(t *testing.T) {
	require.True(t, GPowP(RandQ()).IsValidResidue())
	require.True(t, OneModP().IsValidResidue())
	require.False(t, ZeroModP().IsValidResidue())
	require.False(t, UncheckedElementModP(pInt).IsValidResidue())

	// P-1 has order 2, which does not divide Q
	minusOne := UncheckedElementModP(new(big.Int).Sub(pInt, bigOne))
	require.False(t, minusOne.IsValidResidue())
}

func TestToElementModP(t *testing.T) {
	q := RandQ()
	p := q.ToElementModP()
	require.Equal(t, 0, p.v.Cmp(q.v))
	require.True(t, p.IsInBounds())
}

func TestRandQRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		v := RandQRange(2)
		require.True(t, v.Cmp(TwoModQ()) >= 0)
		require.True(t, v.IsInBounds())
	}
}

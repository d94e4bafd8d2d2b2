package elgamal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thechriswalker/go-electionguard/crypto/dlog"
	"github.com/thechriswalker/go-electionguard/crypto/group"
)

func TestPolynomial(t *testing.T) {
	p := NewPolynomial(group.RandQ(), 3)
	require.Equal(t, 3, p.Degree())
	require.True(t, p.Evaluate(0).Equal(p.Secret()))

	commitments := p.Commitments()
	for i := uint64(1); i <= 5; i++ {
		require.True(t, VerifyShare(commitments, i, p.Evaluate(i)), "share %d", i)
	}
	require.False(t, VerifyShare(commitments, 1, p.Evaluate(2)))
}

func TestLagrange(t *testing.T) {
	// any t+1 points of a degree t polynomial interpolate back to P(0)
	p := NewPolynomial(group.RandQ(), 2)
	for _, indices := range [][]uint64{{1, 2, 3}, {2, 4, 5}, {1, 3, 5, 7}} {
		sum := group.ZeroModQ()
		for _, i := range indices {
			w, err := LagrangeCoefficient(i, indices)
			require.NoError(t, err)
			sum = group.AddModQ(sum, group.MulModQ(w, p.Evaluate(i)))
		}
		require.True(t, sum.Equal(p.Secret()), "indices %v", indices)
	}
	_, err := LagrangeCoefficient(4, []uint64{1, 2, 3})
	require.Error(t, err)
}

func TestThresholdDecrypt(t *testing.T) {
	const threshold, guardians = 3, 5

	// each guardian contributes a polynomial, the joint key is the product of
	// their constant term commitments and guardian i's share is the sum of
	// every P_j(i)
	polys := make([]*Polynomial, guardians)
	publicKey := group.OneModP()
	for j := range polys {
		polys[j] = NewPolynomial(group.RandQ(), threshold-1)
		publicKey = group.MulModP(publicKey, polys[j].Commitments()[0])
	}
	share := func(i uint64) *group.ElementModQ {
		s := group.ZeroModQ()
		for _, p := range polys {
			s = group.AddModQ(s, p.Evaluate(i))
		}
		return s
	}

	table := dlog.New(100)
	cts := make([]*Ciphertext, 0, 4)
	for _, m := range []uint64{1, 0, 1, 1} {
		ct, err := Encrypt(m, group.RandQRange(1), publicKey.WithFixedBase(true))
		require.NoError(t, err)
		cts = append(cts, ct)
	}
	tally, err := Add(cts...)
	require.NoError(t, err)

	for _, present := range [][]uint64{{1, 2, 3}, {3, 4, 5}, {1, 2, 3, 4, 5}} {
		partials := map[uint64]*group.ElementModP{}
		for _, i := range present {
			partials[i] = tally.PartialDecrypt(share(i))
		}
		secret, err := CombinePartialDecryptions(partials)
		require.NoError(t, err)
		m, err := tally.DecryptWithSharedSecret(secret, table)
		require.NoError(t, err)
		require.Equal(t, uint64(3), m, "guardians %v", present)
	}

	_, err = CombinePartialDecryptions(nil)
	require.ErrorIs(t, err, ErrEmptyInput)
}

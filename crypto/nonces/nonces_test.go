package nonces

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/hash"
)

func TestNoncesDeterministic(t *testing.T) {
	seed := group.RandQ()
	a := New(seed, "label")
	b := New(seed, "label")
	for i := uint64(0); i < 5; i++ {
		require.True(t, a.Get(i).Equal(b.Get(i)))
	}
	require.True(t, a.Get(3).Equal(hash.HashElems(seed, "label", uint64(3))))
}

func TestNoncesIndependent(t *testing.T) {
	seed := group.RandQ()
	a := New(seed, "label")
	b := New(seed, "other")
	c := New(group.RandQ(), "label")

	require.False(t, a.Get(0).Equal(a.Get(1)))
	require.False(t, a.Get(0).Equal(b.Get(0)))
	require.False(t, a.Get(0).Equal(c.Get(0)))

	// labels are hashed as separate items, not concatenated
	require.False(t, New(seed, "ab", "c").Get(0).Equal(New(seed, "a", "bc").Get(0)))
}

func TestNoncesSlice(t *testing.T) {
	n := New(group.RandQ())
	all := n.Take(4)
	require.Len(t, all, 4)
	mid := n.Slice(1, 3)
	require.Len(t, mid, 2)
	require.True(t, mid[0].Equal(all[1]))
	require.True(t, mid[1].Equal(all[2]))
	require.Nil(t, n.Slice(3, 3))
}

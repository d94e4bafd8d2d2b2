package random

import (
	"bytes"
	"testing"

	big "github.com/ncw/gmp"
	"github.com/stretchr/testify/require"
)

func TestIntInRange(t *testing.T) {
	max := big.NewInt(1000)
	for i := 0; i < 500; i++ {
		n := Int(max)
		require.True(t, n.Sign() >= 0)
		require.True(t, n.Cmp(max) < 0, "sampled %s >= %s", n, max)
	}
}

func TestIntRejectsInsteadOfReducing(t *testing.T) {
	// max = 5 needs 3 bits. The first byte masks to 7 and must be thrown away,
	// the second masks to 3 and is accepted as is.
	src := bytes.NewReader([]byte{0xff, 0x03})
	n, err := IntFrom(src, big.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, int64(3), n.Int64())
}

func TestIntOneAndEmpty(t *testing.T) {
	n, err := IntFrom(bytes.NewReader(nil), big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, 0, n.Sign())

	_, err = IntFrom(bytes.NewReader(nil), big.NewInt(0))
	require.Error(t, err)
}

func TestIntBrokenReader(t *testing.T) {
	_, err := IntFrom(bytes.NewReader([]byte{0x01}), big.NewInt(1<<20))
	require.Error(t, err)
}

func TestOracleDeterministic(t *testing.T) {
	q := big.NewInt(7919)
	a := Oracle([]byte("input"), q)
	b := Oracle([]byte("input"), q)
	c := Oracle([]byte("other"), q)
	require.Equal(t, 0, a.Cmp(b))
	require.True(t, a.Cmp(q) < 0)
	require.True(t, c.Cmp(q) < 0)
}

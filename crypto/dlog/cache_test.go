package dlog

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thechriswalker/go-electionguard/crypto/group"
)

func gPow(i uint64) *group.ElementModP {
	return group.GPowP(group.ElementModQFromUint64(i))
}

func TestCacheGet(t *testing.T) {
	c := New(1000)
	for _, i := range []uint64{0, 1, 2, 17, 500, 3, 1000} {
		n, err := c.Get(gPow(i))
		require.NoError(t, err)
		require.Equal(t, i, n)
	}
	require.Equal(t, uint64(1000), c.Frontier())
	require.Equal(t, uint64(1001), c.Len())
}

func TestCacheNotFound(t *testing.T) {
	c := New(10)
	_, err := c.Get(gPow(11))
	require.True(t, errors.Is(err, ErrNotFound))

	// the search is bounded and the table is still usable afterwards
	require.Equal(t, uint64(10), c.Frontier())
	n, err := c.Get(gPow(7))
	require.NoError(t, err)
	require.Equal(t, uint64(7), n)
}

func TestCacheDefaultMax(t *testing.T) {
	require.Equal(t, DefaultMaxExponent, New(0).Max())
}

func TestCacheConcurrent(t *testing.T) {
	c := New(2000)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := uint64(w); i < 2000; i += 97 {
				n, err := c.Get(gPow(i))
				if err != nil || n != i {
					t.Errorf("lookup of %d returned %d, %v", i, n, err)
				}
			}
		}(w)
	}
	wg.Wait()
}

func TestCacheExtend(t *testing.T) {
	c := New(100)
	var last uint64
	c.Extend(5000, func(n uint64) { last = n })
	require.Equal(t, uint64(100), last)
	require.Equal(t, uint64(100), c.Frontier())
}

func TestSQLiteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dlog.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	c := New(500)
	c.Extend(300, nil)
	require.NoError(t, store.Save(c))
	n, err := store.Count()
	require.NoError(t, err)
	require.Equal(t, uint64(301), n)

	// saving again is a no-op, extending saves only the tail
	require.NoError(t, store.Save(c))
	c.Extend(400, nil)
	require.NoError(t, store.Save(c))
	n, err = store.Count()
	require.NoError(t, err)
	require.Equal(t, uint64(401), n)

	fresh := New(500)
	require.NoError(t, store.Load(fresh))
	require.Equal(t, uint64(400), fresh.Frontier())
	got, err := fresh.Get(gPow(399))
	require.NoError(t, err)
	require.Equal(t, uint64(399), got)
	// and it keeps extending from the loaded frontier
	got, err = fresh.Get(gPow(450))
	require.NoError(t, err)
	require.Equal(t, uint64(450), got)

	// a smaller cache only takes what it can use
	small := New(50)
	require.NoError(t, store.Load(small))
	require.Equal(t, uint64(50), small.Frontier())

	// reopening keeps the existing table
	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	n, err = reopened.Count()
	require.NoError(t, err)
	require.Equal(t, uint64(401), n)
}

func TestSQLiteSnapshotRejectsBadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dlog.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	c := New(100)
	c.Extend(20, nil)
	require.NoError(t, store.Save(c))

	// corrupt the top entry
	_, err = store.db.Exec(`UPDATE dlog SET value = ? WHERE exponent = 20`, gPow(21).Bytes())
	require.NoError(t, err)
	fresh := New(100)
	err = store.Load(fresh)
	require.True(t, errors.Is(err, ErrBadSnapshot))
	require.Equal(t, uint64(0), fresh.Frontier())

	// a gap
	_, err = store.db.Exec(`DELETE FROM dlog WHERE exponent = 10`)
	require.NoError(t, err)
	err = store.Load(fresh)
	require.True(t, errors.Is(err, ErrBadSnapshot))
	require.Equal(t, uint64(0), fresh.Frontier())
}

func TestSQLiteSnapshotRejectsSwappedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dlog.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	c := New(100)
	c.Extend(20, nil)
	require.NoError(t, store.Save(c))

	// both ends are still right, only the middle is wrong
	_, err = store.db.Exec(`UPDATE dlog SET value = ? WHERE exponent = 3`, gPow(7).Bytes())
	require.NoError(t, err)
	_, err = store.db.Exec(`UPDATE dlog SET value = ? WHERE exponent = 7`, gPow(3).Bytes())
	require.NoError(t, err)

	fresh := New(100)
	err = store.Load(fresh)
	require.True(t, errors.Is(err, ErrBadSnapshot))
	require.Contains(t, err.Error(), "entry 3 is not G^3")
	require.Equal(t, uint64(0), fresh.Frontier())

	// the table is rebuilt on demand instead
	m, err := fresh.Get(gPow(7))
	require.NoError(t, err)
	require.Equal(t, uint64(7), m)
}

package dlog

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	big "github.com/ncw/gmp"
	"github.com/rs/zerolog/log"

	"github.com/thechriswalker/go-electionguard/crypto/group"
)

// ErrNotFound is returned when no exponent up to the cache maximum matches.
// This usually means the ciphertext did not encrypt a small integer, or that the
// wrong key was used to decrypt it.
var ErrNotFound = errors.New("Discrete log not found")

// DefaultMaxExponent bounds the search when nothing else is configured.
const DefaultMaxExponent uint64 = 100_000

type key [group.PBytes]byte

func keyOf(e *group.ElementModP) (k key) {
	copy(k[:], e.Bytes())
	return
}

// Cache maps G^i mod P back to i for 0 <= i <= frontier. Lookups for values
// beyond the frontier extend the table, one multiplication by G at a time.
//
// Reads of the already built prefix never take the lock, extension is single writer.
// Nothing is shared between caches, so a process normally builds one and passes it
// to whatever needs to decrypt.
type Cache struct {
	max   uint64
	table sync.Map // key -> uint64

	mu       sync.Mutex
	last     *group.ElementModP // G^frontier
	frontier uint64             // guarded by mu for writes, atomic for reads
}

// New creates a cache that will search exponents up to and including max.
// A max of zero means DefaultMaxExponent.
func New(max uint64) *Cache {
	if max == 0 {
		max = DefaultMaxExponent
	}
	c := &Cache{max: max, last: group.OneModP()}
	c.table.Store(keyOf(c.last), uint64(0))
	return c
}

// Max is the largest exponent this cache will search for.
func (c *Cache) Max() uint64 { return c.max }

// Frontier is the largest exponent currently in the table.
func (c *Cache) Frontier() uint64 { return atomic.LoadUint64(&c.frontier) }

// Len is the number of entries in the table.
func (c *Cache) Len() uint64 { return c.Frontier() + 1 }

// Get finds i such that G^i == elem.
func (c *Cache) Get(elem *group.ElementModP) (uint64, error) {
	k := keyOf(elem)
	if v, ok := c.table.Load(k); ok {
		return v.(uint64), nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	// someone else may have extended past it while we waited
	if v, ok := c.table.Load(k); ok {
		return v.(uint64), nil
	}
	for c.frontier < c.max {
		if c.step() == k {
			return c.frontier, nil
		}
	}
	log.Debug().Uint64("max", c.max).Msg("discrete log search exhausted")
	return 0, fmt.Errorf("%w: searched exponents up to %d", ErrNotFound, c.max)
}

// Extend builds the table up to exponent `to` (capped at the maximum), calling
// progress with the new frontier every so often if it is not nil.
func (c *Cache) Extend(to uint64, progress func(uint64)) {
	if to > c.max {
		to = c.max
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.frontier < to {
		c.step()
		if progress != nil && c.frontier%1024 == 0 {
			progress(c.frontier)
		}
	}
	if progress != nil {
		progress(c.frontier)
	}
}

// step must be called with the lock held.
func (c *Cache) step() key {
	c.last = group.MulModP(c.last, group.G())
	k := keyOf(c.last)
	next := c.frontier + 1
	c.table.Store(k, next)
	atomic.StoreUint64(&c.frontier, next)
	return k
}

// entries returns the table in exponent order.
func (c *Cache) entries() []*group.ElementModP {
	c.mu.Lock()
	n := c.frontier
	c.mu.Unlock()
	out := make([]*group.ElementModP, n+1)
	c.table.Range(func(k, v interface{}) bool {
		i := v.(uint64)
		if i <= n {
			kk := k.(key)
			out[i] = group.UncheckedElementModP(new(big.Int).SetBytes(kk[:]))
		}
		return true
	})
	return out
}

// restore replaces the table with already verified entries, where
// values[i] == G^i. It only ever grows the table.
func (c *Cache) restore(values []*group.ElementModP) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := uint64(len(values)) - 1
	if n <= c.frontier {
		return
	}
	for i := c.frontier + 1; i <= n; i++ {
		c.table.Store(keyOf(values[i]), i)
	}
	c.last = values[n]
	atomic.StoreUint64(&c.frontier, n)
}

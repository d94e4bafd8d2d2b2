package group

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
	big "github.com/ncw/gmp"
)

// A powRadix is a table of base^(j * 256^i) mod P for every byte position i of a
// 256 bit exponent and every byte value j. An exponentiation is then at most 32
// multiplications, one per non-zero exponent byte.
//
// A table costs ~8000 multiplications to build and holds ~4MB, so it only pays off
// for bases that get raised to many exponents: G and the election public key.
type powRadix struct {
	table [QBytes][256]*big.Int
}

func newPowRadix(base *big.Int) *powRadix {
	pr := &powRadix{}
	row := new(big.Int).Set(base)
	for i := range pr.table {
		pr.table[i][0] = big.NewInt(1)
		pr.table[i][1] = new(big.Int).Set(row)
		for j := 2; j < 256; j++ {
			next := new(big.Int).Mul(pr.table[i][j-1], row)
			pr.table[i][j] = next.Mod(next, pInt)
		}
		// row^256 for the next byte position
		row = new(big.Int).Mul(pr.table[i][255], row)
		row.Mod(row, pInt)
	}
	return pr
}

// pow expects 0 <= e < 2^256
func (pr *powRadix) pow(e *big.Int) *big.Int {
	b := fixedBytes(e, QBytes)
	result := big.NewInt(1)
	for i := 0; i < QBytes; i++ {
		j := b[QBytes-1-i]
		if j == 0 {
			continue
		}
		result.Mul(result, pr.table[i][j])
		result.Mod(result, pInt)
	}
	return result
}

var (
	gTableOnce sync.Once
	gTable     *powRadix
)

func generatorTable() *powRadix {
	gTableOnce.Do(func() {
		gTable = newPowRadix(gInt)
	})
	return gTable
}

// FixedBaseCacheSize is how many non-generator tables are kept at once.
const FixedBaseCacheSize = 8

var (
	tablesOnce sync.Once
	tables     *lru.ARCCache
)

// fixedBaseTable finds or builds the table for a base. Two goroutines asking for a
// new base at the same time may both build it, which wastes time but is harmless.
func fixedBaseTable(base *ElementModP) *powRadix {
	tablesOnce.Do(func() {
		var err error
		tables, err = lru.NewARC(FixedBaseCacheSize)
		if err != nil {
			panic(err)
		}
	})
	key := string(base.Bytes())
	if t, ok := tables.Get(key); ok {
		return t.(*powRadix)
	}
	t := newPowRadix(base.v)
	tables.Add(key, t)
	return t
}

package random

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	big "github.com/ncw/gmp"
)

// Reader is the source of randomness for everything sampled by this module.
// Tests may swap it for a deterministic stream.
var Reader io.Reader = rand.Reader

var errEmptyRange = errors.New("random: empty range")

// Int returns a uniformly random int in [0, max)
func Int(max *big.Int) *big.Int {
	n, err := IntFrom(Reader, max)
	if err != nil {
		// the reader is broken. Nothing we can do.
		panic(err)
	}
	return n
}

// IntFrom samples [0, max) from the given source. Candidates are drawn with exactly
// as many bits as max-1 needs and any candidate >= max is thrown away and drawn
// again. Reducing instead would bias the low values.
func IntFrom(source io.Reader, max *big.Int) (*big.Int, error) {
	if max.Sign() <= 0 {
		return nil, errEmptyRange
	}
	top := new(big.Int).Sub(max, big.NewInt(1))
	bits := top.BitLen()
	size := (bits + 7) / 8
	buf := make([]byte, size)
	if size == 0 {
		// max == 1
		return new(big.Int), nil
	}
	mask := byte(0xff >> uint(8*size-bits))
	n := new(big.Int)
	for {
		if _, err := io.ReadFull(source, buf); err != nil {
			return nil, fmt.Errorf("random: reading entropy: %w", err)
		}
		buf[0] &= mask
		n.SetBytes(buf)
		if n.Cmp(max) < 0 {
			return n, nil
		}
	}
}

// Bytes returns n random bytes.
func Bytes(n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(Reader, b); err != nil {
		panic(err)
	}
	return b
}

// Oracle is used for turning bytes into a random, but deterministic integer.
func Oracle(input []byte, max *big.Int) *big.Int {
	h := sha256.Sum256(input)
	var x big.Int
	x.SetBytes(h[:])
	x.Mod(&x, max)
	return &x
}

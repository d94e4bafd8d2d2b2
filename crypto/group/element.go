package group

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	big "github.com/ncw/gmp"
)

// ErrOutOfBounds is returned when a value is not in [0, modulus)
var ErrOutOfBounds = errors.New("Element out of bounds")

// Element is implemented by ElementModP and ElementModQ so that the n-ary
// products and the exponent of a power can take either.
type Element interface {
	bigInt() *big.Int
}

// ElementModP is an integer in [0, P). It is never mutated after construction.
//
// The fixedBase flag marks values (typically public keys) that are going to be
// raised to many different exponents, which lets PowModP use a precomputed table.
type ElementModP struct {
	v         *big.Int
	fixedBase bool
}

// ElementModQ is an integer in [0, Q). It is never mutated after construction.
type ElementModQ struct {
	v *big.Int
}

func checkBounds(v, modulus *big.Int, name string) error {
	if v.Sign() < 0 || v.Cmp(modulus) >= 0 {
		return fmt.Errorf("%w: value is not in [0, %s)", ErrOutOfBounds, name)
	}
	return nil
}

/////////////////// ElementModP ///////////////////

// NewElementModP copies v into a new element, checking it is in [0, P)
func NewElementModP(v *big.Int) (*ElementModP, error) {
	if err := checkBounds(v, pInt, "P"); err != nil {
		return nil, err
	}
	return &ElementModP{v: new(big.Int).Set(v)}, nil
}

// UncheckedElementModP skips the bounds check. Only use it on values that are known
// to be reduced, such as results of arithmetic mod P.
func UncheckedElementModP(v *big.Int) *ElementModP {
	return &ElementModP{v: new(big.Int).Set(v)}
}

// ElementModPFromBytes reads a big-endian integer of any width.
func ElementModPFromBytes(b []byte) (*ElementModP, error) {
	return NewElementModP(new(big.Int).SetBytes(b))
}

// ElementModPFromHex reads a (case-insensitive) hex string.
func ElementModPFromHex(s string) (*ElementModP, error) {
	v, err := parseHex(s)
	if err != nil {
		return nil, err
	}
	return NewElementModP(v)
}

// ElementModPFromUint64 cannot fail, every uint64 is smaller than P.
func ElementModPFromUint64(u uint64) *ElementModP {
	return &ElementModP{v: new(big.Int).SetUint64(u)}
}

func (e *ElementModP) bigInt() *big.Int { return e.v }

// Value returns a copy of the underlying integer.
func (e *ElementModP) Value() *big.Int { return new(big.Int).Set(e.v) }

// Bytes is the 512 byte big-endian encoding.
func (e *ElementModP) Bytes() []byte { return fixedBytes(e.v, PBytes) }

// Hex is the fixed width upper case hex encoding of Bytes.
func (e *ElementModP) Hex() string { return strings.ToUpper(hex.EncodeToString(e.Bytes())) }

func (e *ElementModP) String() string { return e.Hex() }

// IsFixedBase reports whether exponentiation of this element may use a table.
func (e *ElementModP) IsFixedBase() bool { return e.fixedBase }

// WithFixedBase returns a copy of the element with the fixedBase flag set as given.
func (e *ElementModP) WithFixedBase(fixedBase bool) *ElementModP {
	return &ElementModP{v: e.v, fixedBase: fixedBase}
}

// IsInBounds checks 0 <= v < P
func (e *ElementModP) IsInBounds() bool {
	return e != nil && checkBounds(e.v, pInt, "P") == nil
}

// IsValidResidue checks that the element is a non-zero member of the order Q subgroup,
// i.e. v^Q mod P == 1. Anything received from outside must pass this before it is used
// in a proof.
func (e *ElementModP) IsValidResidue() bool {
	if !e.IsInBounds() || e.v.Sign() == 0 {
		return false
	}
	return new(big.Int).Exp(e.v, qInt, pInt).Cmp(bigOne) == 0
}

// Equal compares values only, the fixedBase flag is advisory.
func (e *ElementModP) Equal(other *ElementModP) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.v.Cmp(other.v) == 0
}

func (e *ElementModP) Cmp(other *ElementModP) int { return e.v.Cmp(other.v) }

func (e *ElementModP) IsZero() bool { return e.v.Sign() == 0 }

/////////////////// ElementModQ ///////////////////

// NewElementModQ copies v into a new element, checking it is in [0, Q)
func NewElementModQ(v *big.Int) (*ElementModQ, error) {
	if err := checkBounds(v, qInt, "Q"); err != nil {
		return nil, err
	}
	return &ElementModQ{v: new(big.Int).Set(v)}, nil
}

// UncheckedElementModQ skips the bounds check.
func UncheckedElementModQ(v *big.Int) *ElementModQ {
	return &ElementModQ{v: new(big.Int).Set(v)}
}

func ElementModQFromBytes(b []byte) (*ElementModQ, error) {
	return NewElementModQ(new(big.Int).SetBytes(b))
}

func ElementModQFromHex(s string) (*ElementModQ, error) {
	v, err := parseHex(s)
	if err != nil {
		return nil, err
	}
	return NewElementModQ(v)
}

// ElementModQFromUint64 cannot fail, every uint64 is smaller than Q.
func ElementModQFromUint64(u uint64) *ElementModQ {
	return &ElementModQ{v: new(big.Int).SetUint64(u)}
}

func (e *ElementModQ) bigInt() *big.Int { return e.v }

func (e *ElementModQ) Value() *big.Int { return new(big.Int).Set(e.v) }

// Bytes is the 32 byte big-endian encoding.
func (e *ElementModQ) Bytes() []byte { return fixedBytes(e.v, QBytes) }

func (e *ElementModQ) Hex() string { return strings.ToUpper(hex.EncodeToString(e.Bytes())) }

func (e *ElementModQ) String() string { return e.Hex() }

func (e *ElementModQ) IsInBounds() bool {
	return e != nil && checkBounds(e.v, qInt, "Q") == nil
}

func (e *ElementModQ) Equal(other *ElementModQ) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.v.Cmp(other.v) == 0
}

func (e *ElementModQ) Cmp(other *ElementModQ) int { return e.v.Cmp(other.v) }

func (e *ElementModQ) IsZero() bool { return e.v.Sign() == 0 }

// Uint64 returns the value and whether it fitted in 64 bits.
func (e *ElementModQ) Uint64() (uint64, bool) {
	if e.v.BitLen() > 64 {
		return 0, false
	}
	return e.v.Uint64(), true
}

// ToElementModP reinterprets the value as an element of P without reduction.
// This is always safe because Q < P.
func (e *ElementModQ) ToElementModP() *ElementModP {
	return &ElementModP{v: e.v}
}

/////////////////// helpers ///////////////////

func parseHex(s string) (*big.Int, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, fmt.Errorf("Invalid hex: empty string")
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("Invalid hex: %q", s)
	}
	return v, nil
}

// fixedBytes left pads the big-endian bytes of v to size.
func fixedBytes(v *big.Int, size int) []byte {
	b := v.Bytes()
	if len(b) >= size {
		return b
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}

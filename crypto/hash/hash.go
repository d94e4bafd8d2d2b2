package hash

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/random"
)

// CryptoHashable is implemented by composite values (ciphertexts, mostly) that
// know how to hash themselves.
type CryptoHashable interface {
	CryptoHash() *group.ElementModQ
}

// item tags. Each item is written as tag || length || payload so that no two
// different sequences can produce the same bytes.
const (
	tagNull byte = iota
	tagModP
	tagModQ
	tagBytes
	tagString
	tagUint
	tagNested
)

// HashElems is the random oracle for every Fiat-Shamir challenge. It accepts
// elements, byte slices, strings, unsigned integers, nil, CryptoHashable values and
// slices of any of those (which are hashed first and included as a single element).
//
// Anything else is a programming error and panics.
func HashElems(items ...interface{}) *group.ElementModQ {
	var buf bytes.Buffer
	for _, item := range items {
		writeItem(&buf, item)
	}
	return group.UncheckedElementModQ(random.Oracle(buf.Bytes(), group.Q().Value()))
}

func writeItem(buf *bytes.Buffer, item interface{}) {
	switch x := item.(type) {
	case nil:
		writeTagged(buf, tagNull, nil)
	case *group.ElementModP:
		if x == nil {
			writeTagged(buf, tagNull, nil)
			return
		}
		writeTagged(buf, tagModP, x.Bytes())
	case *group.ElementModQ:
		if x == nil {
			writeTagged(buf, tagNull, nil)
			return
		}
		writeTagged(buf, tagModQ, x.Bytes())
	case []byte:
		writeTagged(buf, tagBytes, x)
	case string:
		writeTagged(buf, tagString, []byte(x))
	case uint64:
		writeUint(buf, x)
	case uint32:
		writeUint(buf, uint64(x))
	case int:
		if x < 0 {
			panic(fmt.Sprintf("hash: negative integer %d", x))
		}
		writeUint(buf, uint64(x))
	case CryptoHashable:
		writeTagged(buf, tagModQ, x.CryptoHash().Bytes())
	case []*group.ElementModP:
		nested := make([]interface{}, len(x))
		for i := range x {
			nested[i] = x[i]
		}
		writeTagged(buf, tagNested, HashElems(nested...).Bytes())
	case []*group.ElementModQ:
		nested := make([]interface{}, len(x))
		for i := range x {
			nested[i] = x[i]
		}
		writeTagged(buf, tagNested, HashElems(nested...).Bytes())
	case []interface{}:
		writeTagged(buf, tagNested, HashElems(x...).Bytes())
	default:
		panic(fmt.Sprintf("hash: cannot hash value of type %T", item))
	}
}

func writeUint(buf *bytes.Buffer, u uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], u)
	writeTagged(buf, tagUint, b[:])
}

func writeTagged(buf *bytes.Buffer, tag byte, payload []byte) {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(payload)))
	buf.WriteByte(tag)
	buf.Write(l[:])
	buf.Write(payload)
}

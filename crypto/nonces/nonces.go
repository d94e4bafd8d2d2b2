package nonces

import (
	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/hash"
)

// Nonces is a deterministic sequence of pseudo-random elements mod Q, derived
// from a seed and optional labels. The same seed and labels always give the same
// sequence and any change to either gives an unrelated one.
//
// This makes proofs reproducible when the caller wants them to be, without
// holding on to every random value used.
type Nonces struct {
	seed   *group.ElementModQ
	labels []interface{}
}

// New creates the sequence. Labels can be anything hash.HashElems accepts,
// usually a single string naming what the nonces are for.
func New(seed *group.ElementModQ, labels ...interface{}) *Nonces {
	return &Nonces{seed: seed, labels: labels}
}

// Get returns the i'th nonce: H(seed, labels..., i)
func (n *Nonces) Get(i uint64) *group.ElementModQ {
	items := make([]interface{}, 0, len(n.labels)+2)
	items = append(items, n.seed)
	items = append(items, n.labels...)
	items = append(items, i)
	return hash.HashElems(items...)
}

// Slice returns nonces [start, end)
func (n *Nonces) Slice(start, end uint64) []*group.ElementModQ {
	if end <= start {
		return nil
	}
	out := make([]*group.ElementModQ, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, n.Get(i))
	}
	return out
}

// Take returns the first count nonces.
func (n *Nonces) Take(count uint64) []*group.ElementModQ {
	return n.Slice(0, count)
}

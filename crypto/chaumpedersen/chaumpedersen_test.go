package chaumpedersen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thechriswalker/go-electionguard/crypto/elgamal"
	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/precompute"
)

type fixture struct {
	kp    *elgamal.KeyPair
	q     *group.ElementModQ
	nonce *group.ElementModQ
}

func newFixture() *fixture {
	return &fixture{kp: elgamal.GenerateKeyPair(), q: group.RandQ(), nonce: group.RandQRange(1)}
}

func (f *fixture) encrypt(t *testing.T, m uint64) *elgamal.Ciphertext {
	ct, err := elgamal.Encrypt(m, f.nonce, f.kp.Public())
	require.NoError(t, err)
	return ct
}

// disjunctiveMutations replace each of the nine fields, in turn, with a random
// value of the right kind.
func disjunctiveMutations() map[string]func(p *DisjunctiveProof) {
	residue := func() *group.ElementModP { return group.GPowP(group.RandQ()) }
	return map[string]func(p *DisjunctiveProof){
		"a0": func(p *DisjunctiveProof) { p.ProofZeroPad = residue() },
		"b0": func(p *DisjunctiveProof) { p.ProofZeroData = residue() },
		"a1": func(p *DisjunctiveProof) { p.ProofOnePad = residue() },
		"b1": func(p *DisjunctiveProof) { p.ProofOneData = residue() },
		"c0": func(p *DisjunctiveProof) { p.ProofZeroChallenge = group.RandQ() },
		"c1": func(p *DisjunctiveProof) { p.ProofOneChallenge = group.RandQ() },
		"c":  func(p *DisjunctiveProof) { p.Challenge = group.RandQ() },
		"v0": func(p *DisjunctiveProof) { p.ProofZeroResponse = group.RandQ() },
		"v1": func(p *DisjunctiveProof) { p.ProofOneResponse = group.RandQ() },
	}
}

func TestDisjunctiveProof(t *testing.T) {
	f := newFixture()
	k := f.kp.Public()
	seed := group.RandQ()
	for _, m := range []uint64{0, 1} {
		ct := f.encrypt(t, m)

		random, err := NewDisjunctiveProof(ct, f.nonce, k, f.q, m)
		require.NoError(t, err)
		seeded, err := NewDisjunctiveProofSeeded(ct, f.nonce, k, f.q, seed, m)
		require.NoError(t, err)

		for name, p := range map[string]*DisjunctiveProof{"random": random, "seeded": seeded} {
			require.NoError(t, p.Verify(ct, k, f.q), "%s proof of %d", name, m)
			require.True(t, p.IsValid(ct, k, f.q))

			for field, mutate := range disjunctiveMutations() {
				bad := *p
				mutate(&bad)
				require.False(t, bad.IsValid(ct, k, f.q), "%s proof of %d with %s replaced", name, m, field)
			}

			// wrong context
			require.False(t, p.IsValid(ct, k, group.RandQ()))
			require.False(t, p.IsValid(ct, elgamal.GenerateKeyPair().Public(), f.q))
			other := f.encrypt(t, 1-m)
			require.False(t, p.IsValid(other, k, f.q))
		}

		again, err := NewDisjunctiveProofSeeded(ct, f.nonce, k, f.q, seed, m)
		require.NoError(t, err)
		require.True(t, sameDisjunctive(seeded, again))
	}
}

func TestDisjunctiveProofRejectsOtherPlaintexts(t *testing.T) {
	f := newFixture()
	ct := f.encrypt(t, 2)
	_, err := NewDisjunctiveProof(ct, f.nonce, f.kp.Public(), f.q, 2)
	require.True(t, errors.Is(err, ErrInvalidPlaintext))
	_, err = NewDisjunctiveProofSeeded(ct, f.nonce, f.kp.Public(), f.q, group.RandQ(), 2)
	require.True(t, errors.Is(err, ErrInvalidPlaintext))

	// proving the wrong bit does not verify
	ct = f.encrypt(t, 1)
	p, err := NewDisjunctiveProof(ct, f.nonce, f.kp.Public(), f.q, 0)
	require.NoError(t, err)
	require.False(t, p.IsValid(ct, f.kp.Public(), f.q))
}

func TestDisjunctiveProofPrecomputed(t *testing.T) {
	f := newFixture()
	k := f.kp.Public()
	for _, m := range []uint64{0, 1} {
		unit := precompute.NewTwoTriplesAndAQuadruple(k)
		ct := elgamal.EncryptWithTriple(m, unit.Triple1())
		p, err := NewDisjunctiveProofPrecomputed(ct, unit, f.q, m)
		require.NoError(t, err)
		require.NoError(t, p.Verify(ct, k, f.q))

		for field, mutate := range disjunctiveMutations() {
			bad := *p
			mutate(&bad)
			require.Error(t, bad.Verify(ct, k, f.q), "precomputed proof of %d with %s replaced", m, field)
		}
	}
	_, err := NewDisjunctiveProofPrecomputed(f.encrypt(t, 0), precompute.NewTwoTriplesAndAQuadruple(k), f.q, 7)
	require.True(t, errors.Is(err, ErrInvalidPlaintext))
}

func TestDisjunctiveProofMalformed(t *testing.T) {
	f := newFixture()
	ct := f.encrypt(t, 0)
	p, err := NewDisjunctiveProof(ct, f.nonce, f.kp.Public(), f.q, 0)
	require.NoError(t, err)

	// missing values and non residues are reported, never panic
	bad := *p
	bad.ProofZeroPad = nil
	bad.ProofOneResponse = nil
	err = bad.Verify(ct, f.kp.Public(), f.q)
	require.True(t, errors.Is(err, ErrInvalidProof))
	require.Contains(t, err.Error(), "a0 is not a valid residue")
	require.Contains(t, err.Error(), "v1 is out of bounds")

	bad = *p
	bad.ProofOneData = group.UncheckedElementModP(group.P().Value())
	require.False(t, bad.IsValid(ct, f.kp.Public(), f.q))
	require.False(t, p.IsValid(nil, f.kp.Public(), f.q))
	require.False(t, p.IsValid(ct, nil, f.q))

	var missing *DisjunctiveProof
	require.True(t, errors.Is(missing.Verify(ct, f.kp.Public(), f.q), ErrInvalidProof))
	require.False(t, missing.IsValid(ct, f.kp.Public(), f.q))
	var missingConstant *ConstantProof
	require.False(t, missingConstant.IsValid(ct, f.kp.Public(), f.q))
}

func TestConstantProof(t *testing.T) {
	f := newFixture()
	k := f.kp.Public()
	seed := group.RandQ()

	// a sum of three selections
	var cts []*elgamal.Ciphertext
	nonce := group.ZeroModQ()
	for _, m := range []uint64{1, 1, 0, 1} {
		r := group.RandQRange(1)
		ct, err := elgamal.Encrypt(m, r, k)
		require.NoError(t, err)
		cts = append(cts, ct)
		nonce = group.AddModQ(nonce, r)
	}
	sum, err := elgamal.Add(cts...)
	require.NoError(t, err)

	p := NewConstantProof(sum, nonce, k, seed, f.q, 3, nil)
	require.NoError(t, p.Verify(sum, k, f.q))
	require.True(t, p.IsValid(sum, k, f.q))
	require.True(t, sameConstant(p, NewConstantProof(sum, nonce, k, seed, f.q, 3, nil)))

	// a claim of the wrong constant cannot be proven
	wrong := NewConstantProof(sum, nonce, k, seed, f.q, 2, nil)
	require.False(t, wrong.IsValid(sum, k, f.q))

	for name, mutate := range map[string]func(p *ConstantProof){
		"constant":  func(p *ConstantProof) { p.Constant++ },
		"response":  func(p *ConstantProof) { p.Response = group.RandQ() },
		"challenge": func(p *ConstantProof) { p.Challenge = group.RandQ() },
		"a":         func(p *ConstantProof) { p.Pad = group.GPowP(group.RandQ()) },
		"b":         func(p *ConstantProof) { p.Data = group.GPowP(group.RandQ()) },
	} {
		bad := *p
		mutate(&bad)
		require.False(t, bad.IsValid(sum, k, f.q), "%s replaced", name)
	}
	require.False(t, p.IsValid(sum, k, group.RandQ()))
}

func TestConstantProofPrecomputed(t *testing.T) {
	f := newFixture()
	k := f.kp.Public()
	ct := f.encrypt(t, 1)

	buf := precompute.NewBuffer()
	buf.Initialize(k, 1)
	// nothing queued, falls back to the seed
	seed := group.RandQ()
	p := NewConstantProof(ct, f.nonce, k, seed, f.q, 1, buf)
	require.True(t, p.IsValid(ct, k, f.q))
	require.True(t, sameConstant(p, NewConstantProof(ct, f.nonce, k, seed, f.q, 1, nil)))

	require.NoError(t, buf.Start())
	defer buf.Clear()
	require.Eventually(t, func() bool {
		n, _ := buf.Status()
		return n > 0
	}, testTimeout, testTick)
	buf.Stop()

	p = NewConstantProof(ct, f.nonce, k, seed, f.q, 1, buf)
	require.True(t, p.IsValid(ct, k, f.q))
	n, _ := buf.Status()
	require.Equal(t, 0, n)
	// the seed was not used
	require.False(t, sameConstant(p, NewConstantProof(ct, f.nonce, k, seed, f.q, 1, nil)))
}

func TestGenericProof(t *testing.T) {
	f := newFixture()
	k := f.kp.Public()
	ct := f.encrypt(t, 1)
	m := ct.PartialDecrypt(f.kp.Secret())
	seed := group.RandQ()

	p := NewProof(ct, f.kp.Secret(), m, seed, f.q)
	require.NoError(t, p.Verify(ct, k, m, f.q))
	require.True(t, p.IsValid(ct, k, m, f.q))

	// a partial decryption with a different key
	other := elgamal.GenerateKeyPair()
	badM := ct.PartialDecrypt(other.Secret())
	require.False(t, p.IsValid(ct, k, badM, f.q))
	forged := NewProof(ct, other.Secret(), badM, seed, f.q)
	require.False(t, forged.IsValid(ct, k, badM, f.q))

	bad := *p
	bad.Response = group.RandQ()
	require.False(t, bad.IsValid(ct, k, m, f.q))
	bad = *p
	bad.Data = group.GPowP(group.RandQ())
	require.False(t, bad.IsValid(ct, k, m, f.q))
}

func TestConstantProofPrecomputedForAnotherKey(t *testing.T) {
	f := newFixture()
	k := f.kp.Public()
	ct := f.encrypt(t, 1)

	buf := precompute.NewBuffer()
	buf.Initialize(elgamal.GenerateKeyPair().Public(), 1)
	require.NoError(t, buf.Start())
	defer buf.Clear()
	require.Eventually(t, func() bool {
		n, _ := buf.Status()
		return n > 0
	}, testTimeout, testTick)
	buf.Stop()

	seed := group.RandQ()
	p := NewConstantProof(ct, f.nonce, k, seed, f.q, 1, buf)
	require.True(t, p.IsValid(ct, k, f.q))
	require.True(t, sameConstant(p, NewConstantProof(ct, f.nonce, k, seed, f.q, 1, nil)))
	n, _ := buf.Status()
	require.Equal(t, 1, n)
}

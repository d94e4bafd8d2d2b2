package elgamal

import (
	"fmt"

	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/nonces"
)

// KeyPair is an ElGamal secret key s in [2, Q) and its public key K = G^s.
type KeyPair struct {
	secret *group.ElementModQ
	public *group.ElementModP
}

// Secret gets the private part of this keypair
func (kp *KeyPair) Secret() *group.ElementModQ {
	return kp.secret
}

// Public gets the public half of this keypair. It is flagged as a fixed base as
// it will be raised to every encryption nonce.
func (kp *KeyPair) Public() *group.ElementModP {
	return kp.public
}

// KeyPairFromSecret derives the public key from the secret. Secrets 0 and 1
// give a public key of 1 or G which would make every encryption trivial, so they
// are rejected.
func KeyPairFromSecret(secret *group.ElementModQ) (*KeyPair, error) {
	if !secret.IsInBounds() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, group.ErrOutOfBounds)
	}
	if secret.Cmp(group.TwoModQ()) < 0 {
		return nil, fmt.Errorf("%w: secret must be at least 2", ErrInvalidKey)
	}
	return &KeyPair{
		secret: secret,
		public: group.GPowP(secret).WithFixedBase(true),
	}, nil
}

// KeyPairFromPair pairs a secret with an already known public key. The two are
// checked against each other.
func KeyPairFromPair(secret *group.ElementModQ, public *group.ElementModP) (*KeyPair, error) {
	kp, err := KeyPairFromSecret(secret)
	if err != nil {
		return nil, err
	}
	if !kp.public.Equal(public) {
		return nil, fmt.Errorf("%w: public key does not match secret", ErrInvalidKey)
	}
	return kp, nil
}

// GenerateKeyPair creates a new random key pair
func GenerateKeyPair() *KeyPair {
	kp, err := KeyPairFromSecret(group.RandQRange(2))
	if err != nil {
		// RandQRange(2) is always a valid secret
		panic(err)
	}
	return kp
}

// DeriveKeyPair deterministically creates a key pair from a seed, so that the
// same seed and purpose always give the same keys. Different purposes give
// unrelated keys.
func DeriveKeyPair(seed *group.ElementModQ, purpose string) *KeyPair {
	n := nonces.New(seed, "derived-key", purpose)
	for i := uint64(0); ; i++ {
		if kp, err := KeyPairFromSecret(n.Get(i)); err == nil {
			return kp
		}
	}
}

// IsValidPublicKey checks the key is a member of the order Q subgroup and is
// neither 1 nor G.
func IsValidPublicKey(k *group.ElementModP) bool {
	if !k.IsValidResidue() {
		return false
	}
	return !k.Equal(group.OneModP()) && !k.Equal(group.G())
}

package elgamal

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/hash"
	"github.com/thechriswalker/go-electionguard/crypto/precompute"
)

var (
	// ErrInvalidKey is returned for secret keys below 2 or mismatched pairs.
	ErrInvalidKey = errors.New("Invalid ElGamal key")
	// ErrInvalidNonce is returned when encrypting with a zero nonce, which would
	// put the plaintext in the clear.
	ErrInvalidNonce = errors.New("Invalid ElGamal nonce")
	// ErrEmptyInput is returned by operations that need at least one ciphertext.
	ErrEmptyInput = errors.New("No ciphertexts given")
)

// DiscreteLog recovers m from G^m. *dlog.Cache implements it.
type DiscreteLog interface {
	Get(elem *group.ElementModP) (uint64, error)
}

// Ciphertext is an exponential ElGamal encryption of a small integer m with
// nonce r under public key K: Pad = G^r, Data = G^m * K^r.
//
// Ciphertexts multiply to add their plaintexts, see Add.
type Ciphertext struct {
	Pad  *group.ElementModP `json:"pad"`
	Data *group.ElementModP `json:"data"`
}

// Encrypt m under publicKey with the given nonce, which must not be zero.
func Encrypt(m uint64, nonce *group.ElementModQ, publicKey *group.ElementModP) (*Ciphertext, error) {
	if nonce == nil || nonce.IsZero() {
		return nil, ErrInvalidNonce
	}
	pad := group.GPowP(nonce)
	kToR := group.PowModP(publicKey, nonce)
	log.Trace().Uint64("m", m).Str("pad", pad.Hex()).Msg("elgamal encrypt")
	return EncryptWithPrecomputed(m, pad, kToR), nil
}

// EncryptWithPrecomputed builds the ciphertext from G^r and K^r that were
// computed ahead of time.
func EncryptWithPrecomputed(m uint64, gToR, kToR *group.ElementModP) *Ciphertext {
	var data *group.ElementModP
	switch m {
	case 0:
		data = kToR
	case 1:
		data = group.MulModP(group.G(), kToR)
	default:
		data = group.MulModP(group.GPowP(group.ElementModQFromUint64(m)), kToR)
	}
	return &Ciphertext{Pad: gToR, Data: data}
}

// EncryptWithTriple uses a precomputed triple, whose exponent is the nonce.
func EncryptWithTriple(m uint64, triple *precompute.Triple) *Ciphertext {
	return EncryptWithPrecomputed(m, triple.GToExp(), triple.PubkeyToExp())
}

// Add homomorphically combines ciphertexts: the result decrypts to the sum of
// the plaintexts and its nonce is the sum of the nonces.
func Add(cts ...*Ciphertext) (*Ciphertext, error) {
	if len(cts) == 0 {
		return nil, ErrEmptyInput
	}
	pads := make([]group.Element, len(cts))
	datas := make([]group.Element, len(cts))
	for i, ct := range cts {
		pads[i] = ct.Pad
		datas[i] = ct.Data
	}
	return &Ciphertext{Pad: group.MulModP(pads...), Data: group.MulModP(datas...)}, nil
}

// Add returns a new ciphertext combining this one with the others.
func (ct *Ciphertext) Add(others ...*Ciphertext) *Ciphertext {
	sum, _ := Add(append([]*Ciphertext{ct}, others...)...)
	return sum
}

// Decrypt with the secret key, looking up the plaintext in the table.
func (ct *Ciphertext) Decrypt(secret *group.ElementModQ, table DiscreteLog) (uint64, error) {
	return ct.DecryptWithSharedSecret(group.PowModP(ct.Pad, secret), table)
}

// DecryptKnownNonce decrypts using the nonce instead of the secret key, as
// K^r == Pad^s.
func (ct *Ciphertext) DecryptKnownNonce(publicKey *group.ElementModP, nonce *group.ElementModQ, table DiscreteLog) (uint64, error) {
	return ct.DecryptWithSharedSecret(group.PowModP(publicKey, nonce), table)
}

// DecryptWithSharedSecret recovers m from Data / K^r, where the shared secret K^r
// may have come from a single key or a combination of partial decryptions.
func (ct *Ciphertext) DecryptWithSharedSecret(kToR *group.ElementModP, table DiscreteLog) (uint64, error) {
	gToM := group.DivModP(ct.Data, kToR)
	m, err := table.Get(gToM)
	if err != nil {
		return 0, fmt.Errorf("elgamal decrypt: %w", err)
	}
	return m, nil
}

// PartialDecrypt computes Pad^share, one guardian's contribution to the shared
// secret.
func (ct *Ciphertext) PartialDecrypt(share *group.ElementModQ) *group.ElementModP {
	return group.PowModP(ct.Pad, share)
}

// CryptoHash implements hash.CryptoHashable
func (ct *Ciphertext) CryptoHash() *group.ElementModQ {
	return hash.HashElems(ct.Pad, ct.Data)
}

func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	if ct == nil || other == nil {
		return ct == other
	}
	return ct.Pad.Equal(other.Pad) && ct.Data.Equal(other.Data)
}

func (ct *Ciphertext) String() string {
	return fmt.Sprintf("Ciphertext[pad=%s..., data=%s...]", ct.Pad.Hex()[:16], ct.Data.Hex()[:16])
}

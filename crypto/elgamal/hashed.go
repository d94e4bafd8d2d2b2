package elgamal

import (
	"crypto/hmac"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/hash"
	"github.com/thechriswalker/go-electionguard/crypto/precompute"
)

var (
	// ErrAuthentication means the MAC did not match: wrong key, wrong seed or
	// a modified ciphertext.
	ErrAuthentication = errors.New("Hashed ElGamal authentication failed")
	// ErrMalformedCiphertext is returned for data that is empty or not a whole
	// number of blocks.
	ErrMalformedCiphertext = errors.New("Malformed hashed ElGamal ciphertext")
	// ErrMalformedPlaintext is returned when a message cannot be encrypted with the
	// given options.
	ErrMalformedPlaintext = errors.New("Malformed hashed ElGamal plaintext")
	// ErrInvalidPadding is returned when the decrypted padding is inconsistent.
	ErrInvalidPadding = errors.New("Invalid hashed ElGamal padding")
)

// HashedOptions control how a message is laid out before encryption.
type HashedOptions struct {
	// MaxLength is the longest message accepted. The message is framed as
	// be16(zeros) || message || zeros up to the first block boundary at or after
	// MaxLength+2, so every message of up to MaxLength bytes encrypts to the same
	// size. Zero means no framing: the message must then be a non-empty multiple of
	// BlockLength.
	MaxLength int
	// AllowTruncation keeps the first MaxLength bytes of a longer message instead
	// of failing.
	AllowTruncation bool
	// Precomputed, if set, supplies G^r and K^r from a triple. The nonce passed to
	// HashedEncrypt is then unused. When the buffer is empty, or was built for
	// another public key, the nonce is used.
	Precomputed *precompute.Buffer
}

// HashedCiphertext is a hybrid encryption of arbitrary bytes: an ElGamal pad
// G^r, the message xored with a keystream derived from (G^r, K^r), and an HMAC
// over both.
type HashedCiphertext struct {
	Pad  *group.ElementModP `json:"pad"`
	Data []byte             `json:"data"`
	MAC  []byte             `json:"mac"`
}

// HashedEncrypt encrypts message for publicKey. The seed binds the ciphertext to
// its context: decryption needs the same seed.
func HashedEncrypt(message []byte, nonce *group.ElementModQ, publicKey *group.ElementModP, seed *group.ElementModQ, opts HashedOptions) (*HashedCiphertext, error) {
	if nonce == nil || nonce.IsZero() {
		return nil, ErrInvalidNonce
	}
	plaintext, err := frame(message, opts)
	if err != nil {
		return nil, err
	}
	defer wipe(plaintext)

	var gToR, kToR *group.ElementModP
	if opts.Precomputed != nil {
		if triple, ok := opts.Precomputed.PopTripleFor(publicKey); ok {
			log.Trace().Msg("hashed encrypt using precomputed triple")
			gToR, kToR = triple.GToExp(), triple.PubkeyToExp()
		}
	}
	if gToR == nil {
		gToR = group.GPowP(nonce)
		kToR = group.PowModP(publicKey, nonce)
	}

	sessionKey := hash.HashElems(gToR, kToR).Bytes()
	defer wipe(sessionKey)
	seedBytes := seed.Bytes()
	blocks := len(plaintext) / BlockLength

	data := make([]byte, len(plaintext))
	for i := 0; i < blocks; i++ {
		xorBlock(data[i*BlockLength:], plaintext[i*BlockLength:], sessionKey, uint32(i+1), seedBytes, blocks)
	}

	macKey := kdf(sessionKey, 0, seedBytes, blocks)
	defer wipe(macKey)

	return &HashedCiphertext{
		Pad:  gToR,
		Data: data,
		MAC:  computeMAC(macKey, gToR.Bytes(), data),
	}, nil
}

func xorBlock(dst, src, sessionKey []byte, index uint32, seed []byte, blocks int) {
	key := kdf(sessionKey, index, seed, blocks)
	defer wipe(key)
	for j := 0; j < BlockLength; j++ {
		dst[j] = src[j] ^ key[j]
	}
}

// frame applies the padding scheme described on HashedOptions.
func frame(message []byte, opts HashedOptions) ([]byte, error) {
	if opts.MaxLength <= 0 {
		if len(message) == 0 || len(message)%BlockLength != 0 {
			return nil, fmt.Errorf("%w: unpadded message must be a non-empty multiple of %d bytes, got %d", ErrMalformedPlaintext, BlockLength, len(message))
		}
		return clone(message), nil
	}
	if opts.MaxLength > 0xffff-2 {
		return nil, fmt.Errorf("%w: max length %d too large", ErrMalformedPlaintext, opts.MaxLength)
	}
	if len(message) > opts.MaxLength {
		if !opts.AllowTruncation {
			return nil, fmt.Errorf("%w: message is %d bytes, max is %d", ErrMalformedPlaintext, len(message), opts.MaxLength)
		}
		message = message[:opts.MaxLength]
	}
	total := (opts.MaxLength + 2 + BlockLength - 1) / BlockLength * BlockLength
	out := make([]byte, total)
	binary.BigEndian.PutUint16(out, uint16(total-2-len(message)))
	copy(out[2:], message)
	return out, nil
}

// Decrypt with the secret key. lookForPadding must match whether the message was
// framed, i.e. whether MaxLength was set when encrypting.
func (ct *HashedCiphertext) Decrypt(secret *group.ElementModQ, seed *group.ElementModQ, lookForPadding bool) ([]byte, error) {
	return ct.DecryptWithSharedSecret(group.PowModP(ct.Pad, secret), seed, lookForPadding)
}

// DecryptWithSharedSecret decrypts with K^r, from a single key or combined
// partial decryptions.
func (ct *HashedCiphertext) DecryptWithSharedSecret(kToR *group.ElementModP, seed *group.ElementModQ, lookForPadding bool) ([]byte, error) {
	if len(ct.Data) == 0 || len(ct.Data)%BlockLength != 0 {
		return nil, fmt.Errorf("%w: data length %d is not a non-empty multiple of %d", ErrMalformedCiphertext, len(ct.Data), BlockLength)
	}
	if ct.Pad == nil {
		return nil, fmt.Errorf("%w: missing pad", ErrMalformedCiphertext)
	}
	blocks := len(ct.Data) / BlockLength
	seedBytes := seed.Bytes()

	sessionKey := hash.HashElems(ct.Pad, kToR).Bytes()
	defer wipe(sessionKey)

	macKey := kdf(sessionKey, 0, seedBytes, blocks)
	defer wipe(macKey)
	if !hmac.Equal(ct.MAC, computeMAC(macKey, ct.Pad.Bytes(), ct.Data)) {
		return nil, ErrAuthentication
	}

	plaintext := make([]byte, len(ct.Data))
	defer wipe(plaintext)
	for i := 0; i < blocks; i++ {
		xorBlock(plaintext[i*BlockLength:], ct.Data[i*BlockLength:], sessionKey, uint32(i+1), seedBytes, blocks)
	}

	if !lookForPadding {
		return clone(plaintext), nil
	}
	padLen := int(binary.BigEndian.Uint16(plaintext))
	if padLen > len(plaintext)-2 {
		return nil, fmt.Errorf("%w: padding length %d exceeds %d bytes", ErrInvalidPadding, padLen, len(plaintext)-2)
	}
	for _, b := range plaintext[len(plaintext)-padLen:] {
		if b != 0 {
			return nil, fmt.Errorf("%w: non-zero padding byte", ErrInvalidPadding)
		}
	}
	return clone(plaintext[2 : len(plaintext)-padLen]), nil
}

// PartialDecrypt computes Pad^share
func (ct *HashedCiphertext) PartialDecrypt(share *group.ElementModQ) *group.ElementModP {
	return group.PowModP(ct.Pad, share)
}

// CryptoHash implements hash.CryptoHashable
func (ct *HashedCiphertext) CryptoHash() *group.ElementModQ {
	return hash.HashElems(ct.Pad, ct.Data, ct.MAC)
}

func (ct *HashedCiphertext) Equal(other *HashedCiphertext) bool {
	if ct == nil || other == nil {
		return ct == other
	}
	return ct.Pad.Equal(other.Pad) && hmac.Equal(ct.Data, other.Data) && hmac.Equal(ct.MAC, other.MAC)
}

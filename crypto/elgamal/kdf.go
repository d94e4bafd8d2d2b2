package elgamal

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
)

const (
	// BlockLength is the hashed ElGamal block size in bytes, one HMAC-SHA256 output.
	BlockLength = 32
	blockBits   = BlockLength * 8
)

// kdf derives the index'th 32 byte key from the session key:
//
//	HMAC-SHA256(sessionKey, be32(index) || seed || be32(blocks * 256))
//
// Index 0 is the MAC key, 1..blocks are the keystream.
func kdf(sessionKey []byte, index uint32, seed []byte, blocks int) []byte {
	var b [4]byte
	mac := hmac.New(sha256.New, sessionKey)
	binary.BigEndian.PutUint32(b[:], index)
	mac.Write(b[:])
	mac.Write(seed)
	binary.BigEndian.PutUint32(b[:], uint32(blocks*blockBits))
	mac.Write(b[:])
	return mac.Sum(nil)
}

func computeMAC(macKey []byte, parts ...[]byte) []byte {
	mac := hmac.New(sha256.New, macKey)
	for _, p := range parts {
		mac.Write(p)
	}
	return mac.Sum(nil)
}

// wipe zeroes key material once it is no longer needed.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

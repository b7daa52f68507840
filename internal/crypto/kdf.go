package crypto

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeyMaterialSize is the default size of derived key material in bytes.
	KeyMaterialSize = 20
	// SaltSize is the salt size in bytes.
	SaltSize = 32
	// DefaultRounds is the default PBKDF2 round count (OWASP minimum).
	DefaultRounds = 210000
)

// PRF selects the hash family the PBKDF2 HMAC is built over.
type PRF func() hash.Hash

// KDF derives fixed-size key material from passwords. The output size and
// PRF are fixed at construction and never vary per call.
type KDF struct {
	prf  PRF
	size int
}

// KDFOption configures a KDF.
type KDFOption func(*KDF)

// WithPRF substitutes the hash family used by the PBKDF2 HMAC.
func WithPRF(prf PRF) KDFOption {
	return func(k *KDF) {
		k.prf = prf
	}
}

// WithSize sets the derived key material size in bytes.
func WithSize(size int) KDFOption {
	return func(k *KDF) {
		k.size = size
	}
}

// NewKDF creates a KDF with PBKDF2-HMAC-SHA-512 and a 20-byte output unless
// overridden by options.
func NewKDF(opts ...KDFOption) (*KDF, error) {
	k := &KDF{
		prf:  sha512.New,
		size: KeyMaterialSize,
	}
	for _, opt := range opts {
		opt(k)
	}

	if k.prf == nil {
		return nil, errors.New("nil PRF")
	}
	if k.size <= 0 {
		return nil, errors.New("key size must be positive")
	}

	return k, nil
}

// Size returns the derived key material size in bytes.
func (k *KDF) Size() int {
	return k.size
}

// DeriveKey stretches a password and salt into key material. Identical
// inputs always yield identical output.
func (k *KDF) DeriveKey(password, salt []byte, rounds uint32) []byte {
	return pbkdf2.Key(password, salt, int(rounds), k.size, k.prf)
}

// DeriveKeyHex returns the derived key material as lowercase hex.
func (k *KDF) DeriveKeyHex(password, salt []byte, rounds uint32) string {
	key := k.DeriveKey(password, salt, rounds)
	defer ClearBytes(key)
	return hex.EncodeToString(key)
}

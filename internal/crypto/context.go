package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	siv "github.com/secure-io/siv-go"
)

const (
	// KeySize is the AES-256 key size in bytes.
	KeySize = 32
	// NonceSize is the GCM-SIV nonce size in bytes.
	NonceSize = 12
	// TagSize is the GCM-SIV authentication tag size in bytes.
	TagSize = 16
)

// ErrNonceSource is returned when the key material string a nonce is taken
// from is shorter than NonceSize bytes.
var ErrNonceSource = errors.New("nonce source shorter than 12 bytes")

// Context bundles an AES-256-GCM-SIV cipher with the nonce used for every
// message sealed under it. It is immutable once built and safe for shared
// read-only use.
type Context struct {
	aead  cipher.AEAD
	nonce [NonceSize]byte
}

type contextConfig struct {
	random io.Reader
	key    []byte
}

// ContextOption configures context construction.
type ContextOption func(*contextConfig)

// WithRandom substitutes the random source used for key generation.
// The default is crypto/rand.
func WithRandom(r io.Reader) ContextOption {
	return func(c *contextConfig) {
		c.random = r
	}
}

// WithKey supplies an explicit 32-byte cipher key instead of a randomly
// generated one. Required when ciphertexts must be decryptable by a context
// built later, since generated keys are never derived from the password.
func WithKey(key []byte) ContextOption {
	return func(c *contextConfig) {
		c.key = key
	}
}

// NewContext builds a cipher context from derived key material in hex form.
// A fresh 256-bit key is generated unless WithKey is given, and the nonce is
// the first 12 bytes of keyHex itself, not of its decoded value. Contexts
// built from the same key material therefore share a nonce, which
// AES-GCM-SIV is designed to tolerate.
func NewContext(keyHex string, opts ...ContextOption) (*Context, error) {
	cfg := contextConfig{random: rand.Reader}
	for _, opt := range opts {
		opt(&cfg)
	}

	key := cfg.key
	if key == nil {
		key = make([]byte, KeySize)
		if _, err := io.ReadFull(cfg.random, key); err != nil {
			return nil, fmt.Errorf("failed to generate key: %w", err)
		}
		defer ClearBytes(key)
	} else if len(key) != KeySize {
		return nil, fmt.Errorf("cipher key must be %d bytes, got %d", KeySize, len(key))
	}

	aead, err := siv.NewGCM(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(keyHex) < NonceSize {
		return nil, ErrNonceSource
	}

	ctx := &Context{aead: aead}
	copy(ctx.nonce[:], keyHex[:NonceSize])

	return ctx, nil
}

// Nonce returns a copy of the context's nonce.
func (c *Context) Nonce() []byte {
	nonce := make([]byte, NonceSize)
	copy(nonce, c.nonce[:])
	return nonce
}

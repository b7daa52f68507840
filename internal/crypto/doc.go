// Package crypto provides the password-based encryption pipeline for hexseal.
//
// The pipeline has four parts:
//   - KDF: PBKDF2-HMAC stretching of a password+salt into fixed-size key
//     material (default PRF SHA-512, default output 20 bytes)
//   - Buffer: a growable byte workspace for in-place AEAD operations
//   - Context: an immutable bundle of AES-256-GCM-SIV cipher + 12-byte nonce
//   - Sealer: encrypts a plaintext under a Context into lowercase hex
//     (ciphertext followed by the 16-byte authentication tag)
//
// The nonce is taken from the first 12 bytes of the derived key material's
// hex encoding, so repeated derivations from the same password produce the
// same nonce. AES-GCM-SIV is used precisely because it tolerates nonce
// reuse; equal plaintexts sealed under the same context are detectable as
// equal, but never recoverable without the key.
//
// The cipher key is independent of the password by default: NewContext
// draws a fresh 256-bit key from a random source. Callers that need
// ciphertexts to be decryptable across contexts must supply a key
// explicitly via WithKey.
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - One Buffer per call; a Context may be shared across goroutines
package crypto

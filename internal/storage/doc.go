// Package storage provides the BBolt database interface for hexseal.
//
// Database structure uses three buckets:
//   - config: KDF parameters (salt, rounds), sealed password check,
//     timestamps, vault id (unencrypted)
//   - index: Secret names, plaintext sizes, timestamps (unencrypted, for ls/status)
//   - secrets: Hex-encoded ciphertexts keyed by secret name
//
// The unencrypted index bucket enables hexseal ls and hexseal status
// to work without requiring a password, improving UX for common operations.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage

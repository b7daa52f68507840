// Package vault provides the main hexseal vault operations.
//
// Core operations include:
//   - Init: Create new vault with a password-derived cipher context
//   - Set/Get/All: Seal and open named secrets
//   - Remove: Remove secrets from the vault
//   - ChangePassword: Re-encrypt the vault under a new password
//
// A vault stores a random KDF salt and round count unencrypted. Unlocking
// derives a single PBKDF2-SHA-512 block from the password: the first 20
// bytes are the key material whose hex encoding seeds the cipher nonce,
// the next 32 bytes are the AES-256-GCM-SIV key. Every secret in a vault
// is sealed under the same context; GCM-SIV keeps nonce reuse safe, at
// the cost of equal plaintexts producing equal ciphertexts.
//
// Password verification uses a sealed check string stored in the config
// bucket, so a wrong password is detected before any secret is touched.
package vault

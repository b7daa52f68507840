package vault

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/hexseal/hexseal/internal/crypto"
	"github.com/hexseal/hexseal/internal/storage"
)

const (
	// VaultFile is the vault database filename.
	VaultFile = ".hexseal"

	passwordCheckString = "hexseal-password-check"

	// derivedSize covers the 20-byte key material (nonce source) plus the
	// 32-byte cipher key, drawn from one PBKDF2 call.
	derivedSize = crypto.KeyMaterialSize + crypto.KeySize
)

var (
	ErrNotInitialized   = errors.New("hexseal not initialized")
	ErrAlreadyExists    = errors.New("hexseal already exists")
	ErrWrongPassword    = errors.New("wrong password")
	ErrPasswordRequired = errors.New("password required")
	ErrNoSecrets        = errors.New("no secrets in vault")
	ErrSecretNotFound   = errors.New("secret not found")
	ErrInvalidName      = errors.New("invalid secret name")
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Secret is a decrypted name/value pair.
type Secret struct {
	Name  string
	Value []byte
}

// StatusInfo describes vault state without requiring a password.
type StatusInfo struct {
	Secrets    []storage.IndexEntry
	Rounds     uint32
	LastSealed time.Time
}

// Vault manages encrypted secret storage
type Vault struct {
	path   string
	sealer crypto.Sealer
}

// New creates a Vault instance rooted at the given directory
func New(dir string) *Vault {
	return &Vault{
		path:   filepath.Join(dir, VaultFile),
		sealer: crypto.NewSealer(),
	}
}

// Path returns the vault database path
func (v *Vault) Path() string {
	return v.path
}

func (v *Vault) open() (*storage.Storage, error) {
	if _, err := os.Stat(v.path); err != nil {
		return nil, ErrNotInitialized
	}
	db, err := storage.Open(v.path)
	if err != nil {
		return nil, ErrNotInitialized
	}
	return db, nil
}

// unlock derives the cipher context from the password and the vault's
// stored KDF parameters, and verifies the password against the sealed
// check value before returning.
func (v *Vault) unlock(db *storage.Storage, password []byte) (*crypto.Context, error) {
	if password == nil {
		return nil, ErrPasswordRequired
	}

	salt, err := db.GetSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to get salt: %w", err)
	}
	rounds, err := db.GetRounds()
	if err != nil {
		return nil, fmt.Errorf("failed to get rounds: %w", err)
	}

	ctx, err := v.buildContext(password, salt, rounds)
	if err != nil {
		return nil, err
	}

	check, err := db.GetCheck()
	if err != nil {
		return nil, ErrWrongPassword
	}
	plain, err := v.sealer.Open(ctx, check)
	if err != nil || plain != passwordCheckString {
		return nil, ErrWrongPassword
	}

	return ctx, nil
}

// buildContext derives key material and cipher key from a password in one
// PBKDF2 call and builds the AEAD context. The nonce comes from the hex of
// the 20-byte material; the explicit 32-byte key makes ciphertexts
// decryptable by any context later derived from the same password.
func (v *Vault) buildContext(password, salt []byte, rounds uint32) (*crypto.Context, error) {
	kdf, err := crypto.NewKDF(crypto.WithSize(derivedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create KDF: %w", err)
	}

	derived := kdf.DeriveKey(password, salt, rounds)
	defer crypto.ClearBytes(derived)

	material := derived[:crypto.KeyMaterialSize]
	key := derived[crypto.KeyMaterialSize:]

	ctx, err := crypto.NewContext(hex.EncodeToString(material), crypto.WithKey(key))
	if err != nil {
		return nil, fmt.Errorf("failed to build cipher context: %w", err)
	}
	return ctx, nil
}

// Init creates a new vault protected by the given password
func (v *Vault) Init(password []byte) error {
	if _, err := os.Stat(v.path); err == nil {
		return ErrAlreadyExists
	}

	db, err := storage.Open(v.path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	rounds := uint32(crypto.DefaultRounds)

	if err := db.SetSalt(salt); err != nil {
		return fmt.Errorf("failed to store salt: %w", err)
	}
	if err := db.SetRounds(rounds); err != nil {
		return fmt.Errorf("failed to store rounds: %w", err)
	}

	ctx, err := v.buildContext(password, salt, rounds)
	if err != nil {
		return err
	}

	check, err := v.sealer.Seal(ctx, passwordCheckString)
	if err != nil {
		return fmt.Errorf("failed to seal check value: %w", err)
	}
	if err := db.SetCheck(check); err != nil {
		return fmt.Errorf("failed to store check value: %w", err)
	}

	return nil
}

// Set seals a secret value under the given name, creating or replacing it
func (v *Vault) Set(name string, value, password []byte) error {
	if !nameRe.MatchString(name) {
		return ErrInvalidName
	}

	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, err := v.unlock(db, password)
	if err != nil {
		return err
	}

	ciphertext, err := v.sealer.Seal(ctx, string(value))
	if err != nil {
		return fmt.Errorf("failed to seal secret: %w", err)
	}

	if err := db.StoreSecret(name, ciphertext); err != nil {
		return fmt.Errorf("failed to store secret: %w", err)
	}

	now := time.Now()
	entry := storage.IndexEntry{
		Name:    name,
		Size:    int64(len(value)),
		Created: now,
		Updated: now,
	}
	if prev, err := db.GetIndexEntry(name); err == nil && prev != nil {
		entry.Created = prev.Created
	}
	if err := db.UpdateIndex(entry); err != nil {
		return fmt.Errorf("failed to update index: %w", err)
	}

	return db.UpdateModified()
}

// Get opens a single secret by name
func (v *Vault) Get(name string, password []byte) ([]byte, error) {
	db, err := v.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, err := v.unlock(db, password)
	if err != nil {
		return nil, err
	}

	ciphertext, err := db.GetSecret(name)
	if err != nil {
		return nil, ErrSecretNotFound
	}

	plain, err := v.sealer.Open(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to open secret %s: %w", name, err)
	}
	return []byte(plain), nil
}

// All opens every secret in the vault
func (v *Vault) All(ctx context.Context, password []byte) ([]Secret, error) {
	db, err := v.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	cctx, err := v.unlock(db, password)
	if err != nil {
		return nil, err
	}

	names, err := db.GetSecretNames()
	if err != nil {
		return nil, fmt.Errorf("failed to list secrets: %w", err)
	}
	if len(names) == 0 {
		return nil, ErrNoSecrets
	}

	secrets := make([]Secret, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ciphertext, err := db.GetSecret(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read secret %s: %w", name, err)
		}
		plain, err := v.sealer.Open(cctx, ciphertext)
		if err != nil {
			return nil, fmt.Errorf("failed to open secret %s: %w", name, err)
		}
		secrets = append(secrets, Secret{Name: name, Value: []byte(plain)})
	}

	return secrets, nil
}

// Remove deletes secrets from the vault. The password is verified first so
// a typo cannot destroy data.
func (v *Vault) Remove(ctx context.Context, names []string, password []byte) error {
	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := v.unlock(db, password); err != nil {
		return err
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		if entry, err := db.GetIndexEntry(name); err != nil || entry == nil {
			return fmt.Errorf("%w: %s", ErrSecretNotFound, name)
		}
		if err := db.DeleteSecret(name); err != nil {
			return fmt.Errorf("failed to delete secret %s: %w", name, err)
		}
		if err := db.RemoveFromIndex(name); err != nil {
			return fmt.Errorf("failed to remove %s from index: %w", name, err)
		}
	}

	return db.UpdateModified()
}

// List returns the public index without requiring a password
func (v *Vault) List() ([]storage.IndexEntry, error) {
	db, err := v.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.GetIndex()
}

// Status reports vault state without requiring a password
func (v *Vault) Status() (*StatusInfo, error) {
	db, err := v.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	entries, err := db.GetIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	rounds, err := db.GetRounds()
	if err != nil {
		return nil, fmt.Errorf("failed to read rounds: %w", err)
	}
	modified, err := db.GetModified()
	if err != nil {
		return nil, fmt.Errorf("failed to read modification time: %w", err)
	}

	return &StatusInfo{
		Secrets:    entries,
		Rounds:     rounds,
		LastSealed: modified,
	}, nil
}

// ChangePassword re-encrypts every secret under a new password
func (v *Vault) ChangePassword(ctx context.Context, currentPassword, newPassword []byte) error {
	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	oldCtx, err := v.unlock(db, currentPassword)
	if err != nil {
		return err
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	rounds := uint32(crypto.DefaultRounds)

	newCtx, err := v.buildContext(newPassword, salt, rounds)
	if err != nil {
		return err
	}

	names, err := db.GetSecretNames()
	if err != nil {
		return fmt.Errorf("failed to list secrets: %w", err)
	}

	// Reseal everything before touching the KDF parameters, so a failure
	// here leaves the vault readable with the old password.
	resealed := make(map[string]string, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		ciphertext, err := db.GetSecret(name)
		if err != nil {
			return fmt.Errorf("failed to read secret %s: %w", name, err)
		}
		plain, err := v.sealer.Open(oldCtx, ciphertext)
		if err != nil {
			return fmt.Errorf("failed to open secret %s: %w", name, err)
		}
		resealed[name], err = v.sealer.Seal(newCtx, plain)
		if err != nil {
			return fmt.Errorf("failed to reseal secret %s: %w", name, err)
		}
	}

	check, err := v.sealer.Seal(newCtx, passwordCheckString)
	if err != nil {
		return fmt.Errorf("failed to seal check value: %w", err)
	}

	if err := db.SetSalt(salt); err != nil {
		return fmt.Errorf("failed to store salt: %w", err)
	}
	if err := db.SetRounds(rounds); err != nil {
		return fmt.Errorf("failed to store rounds: %w", err)
	}
	if err := db.SetCheck(check); err != nil {
		return fmt.Errorf("failed to store check value: %w", err)
	}
	for name, ciphertext := range resealed {
		if err := db.StoreSecret(name, ciphertext); err != nil {
			return fmt.Errorf("failed to store secret %s: %w", name, err)
		}
	}

	return db.UpdateModified()
}

// VerifyPassword checks if the password is correct for this vault
func (v *Vault) VerifyPassword(password []byte) error {
	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = v.unlock(db, password)
	return err
}

// GetVaultID retrieves the vault ID from storage
func (v *Vault) GetVaultID() (string, error) {
	db, err := v.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.GetVaultID()
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one
func (v *Vault) GetOrCreateVaultID() (string, error) {
	db, err := v.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.GetOrCreateVaultID()
}

// Compact compacts the database to reclaim unused space.
// This is useful after removing secrets from the vault.
func (v *Vault) Compact() error {
	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Compact()
}

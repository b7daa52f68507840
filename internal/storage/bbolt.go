package storage

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket  = []byte("config")  // KDF params (salt, rounds), timestamps, vault id - unencrypted
	IndexBucket   = []byte("index")   // Public secret list for ls/status - unencrypted
	SecretsBucket = []byte("secrets") // Hex ciphertexts keyed by secret name
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigSalt     = []byte("salt")
	ConfigRounds   = []byte("rounds")
	ConfigCheck    = []byte("check")
	ConfigVaultID  = []byte("vault_id")
)

// Storage provides BBolt-based storage for hexseal
type Storage struct {
	db *bolt.DB
}

// Open opens or creates a hexseal database
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Initialize creates the bucket structure for a new vault
func (s *Storage) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, IndexBucket, SecretsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}

		now := time.Now()
		created, _ := now.MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// IsInitialized checks if the database has been initialized
func (s *Storage) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// SetSalt stores the KDF salt
func (s *Storage) SetSalt(salt []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		return config.Put(ConfigSalt, salt)
	})
}

// GetSalt retrieves the KDF salt
func (s *Storage) GetSalt() ([]byte, error) {
	var salt []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		salt = config.Get(ConfigSalt)
		if salt == nil {
			return fmt.Errorf("salt not found")
		}
		// Make a copy since the slice is only valid during the transaction
		salt = append([]byte(nil), salt...)
		return nil
	})
	return salt, err
}

// SetRounds stores the KDF round count
func (s *Storage) SetRounds(rounds uint32) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, rounds)
		return config.Put(ConfigRounds, buf)
	})
}

// GetRounds retrieves the KDF round count
func (s *Storage) GetRounds() (uint32, error) {
	var rounds uint32
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		buf := config.Get(ConfigRounds)
		if buf == nil || len(buf) != 4 {
			return fmt.Errorf("rounds not found")
		}
		rounds = binary.BigEndian.Uint32(buf)
		return nil
	})
	return rounds, err
}

// SetCheck stores the sealed password verification value
func (s *Storage) SetCheck(check string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		return config.Put(ConfigCheck, []byte(check))
	})
}

// GetCheck retrieves the sealed password verification value
func (s *Storage) GetCheck() (string, error) {
	var check string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigCheck)
		if data == nil {
			return fmt.Errorf("check value not found")
		}
		check = string(data)
		return nil
	})
	return check, err
}

// UpdateModified updates the last modified timestamp
func (s *Storage) UpdateModified() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		now := time.Now()
		modified, _ := now.MarshalBinary()
		return config.Put(ConfigModified, modified)
	})
}

// GetModified retrieves the last modified timestamp
func (s *Storage) GetModified() (time.Time, error) {
	var modified time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

// GetVaultID retrieves the vault ID from config bucket
func (s *Storage) GetVaultID() (string, error) {
	var vaultID string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigVaultID)
		if data == nil {
			return fmt.Errorf("vault_id not found")
		}
		vaultID = string(data)
		return nil
	})
	return vaultID, err
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one
func (s *Storage) GetOrCreateVaultID() (string, error) {
	vaultID, err := s.GetVaultID()
	if err == nil {
		return vaultID, nil
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate vault ID: %w", err)
	}
	vaultID = hex.EncodeToString(b)

	err = s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		return config.Put(ConfigVaultID, []byte(vaultID))
	})
	if err != nil {
		return "", err
	}

	return vaultID, nil
}

// IndexEntry represents a secret in the public index
type IndexEntry struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"` // Plaintext size in bytes
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// UpdateIndex adds or updates a secret's public index entry
func (s *Storage) UpdateIndex(entry IndexEntry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return index.Put([]byte(entry.Name), data)
	})
}

// RemoveFromIndex removes a secret from the public index
func (s *Storage) RemoveFromIndex(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		return index.Delete([]byte(name))
	})
}

// GetIndex returns all entries in the public index
func (s *Storage) GetIndex() ([]IndexEntry, error) {
	var entries []IndexEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		if index == nil {
			return fmt.Errorf("index bucket not found")
		}
		return index.ForEach(func(k, v []byte) error {
			var entry IndexEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	})
	return entries, err
}

// GetIndexEntry returns a single index entry, or nil if absent
func (s *Storage) GetIndexEntry(name string) (*IndexEntry, error) {
	var entry *IndexEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		if index == nil {
			return fmt.Errorf("index bucket not found")
		}
		data := index.Get([]byte(name))
		if data == nil {
			return nil // Secret not in index
		}
		entry = &IndexEntry{}
		return json.Unmarshal(data, entry)
	})
	return entry, err
}

// StoreSecret stores a secret's hex ciphertext
func (s *Storage) StoreSecret(name string, ciphertextHex string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		secrets := tx.Bucket(SecretsBucket)
		return secrets.Put([]byte(name), []byte(ciphertextHex))
	})
}

// GetSecret retrieves a secret's hex ciphertext
func (s *Storage) GetSecret(name string) (string, error) {
	var ciphertext string
	err := s.db.View(func(tx *bolt.Tx) error {
		secrets := tx.Bucket(SecretsBucket)
		if secrets == nil {
			return fmt.Errorf("secrets bucket not found")
		}
		data := secrets.Get([]byte(name))
		if data == nil {
			return fmt.Errorf("secret not found")
		}
		ciphertext = string(data)
		return nil
	})
	return ciphertext, err
}

// DeleteSecret removes a secret's ciphertext
func (s *Storage) DeleteSecret(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		secrets := tx.Bucket(SecretsBucket)
		return secrets.Delete([]byte(name))
	})
}

// GetSecretNames returns all secret names in the index
func (s *Storage) GetSecretNames() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		if index == nil {
			return nil
		}
		return index.ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after deleting secrets to reclaim disk space.
func (s *Storage) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath)
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	// Reopen the compacted database
	db, err := bolt.Open(srcPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}
	s.db = db

	return nil
}

// Package storage is the embedded stand-in for the browser's localStorage:
// one opaque JSON value per named key, with a lenient failure contract.
// Read and write errors are logged and swallowed so callers degrade to
// in-memory operation instead of surfacing storage faults.
package storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Persisted state keys. Each holds a JSON document; absence or malformed
// content means "nothing persisted".
const (
	KeyCart      = "agronova_cart"
	KeyWishlist  = "agronova_wishlist"
	KeyUser      = "agronova_user"
	KeyUserToken = "agronova_user_token"
	KeyUserData  = "agronova_user_data"
	KeyAdmin     = "agronova_admin"
	KeyProducts  = "agronova_products"
)

var bucketName = []byte("agronova")

// Store wraps a bbolt file with get/put/delete on string keys.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the state file, creating parent directories as
// needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "storage: create dir")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "storage: open")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, berr := tx.CreateBucketIfNotExists(bucketName)
		return berr
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "storage: init bucket")
	}
	return &Store{db: db}, nil
}

// Get returns the stored value, or nil when the key is absent or the read
// fails. Failures are logged, never returned.
func (s *Store) Get(key string) []byte {
	if s == nil || s.db == nil {
		return nil
	}
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			out = make([]byte, len(v))
			copy(out, v)
		}
		return nil
	})
	if err != nil {
		zap.S().Warnf("storage: read %s failed: %v", key, err)
		return nil
	}
	return out
}

// Put stores a value under key. Write failures are logged and swallowed;
// the owning store keeps operating in memory.
func (s *Store) Put(key string, value []byte) {
	if s == nil || s.db == nil {
		return
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
	if err != nil {
		zap.S().Warnf("storage: write %s failed: %v", key, err)
	}
}

// Delete removes a key. Missing keys and failures are both non-events.
func (s *Store) Delete(key string) {
	if s == nil || s.db == nil {
		return
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		zap.S().Warnf("storage: delete %s failed: %v", key, err)
	}
}

// Close releases the underlying file.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

package cli

import (
	"crypto/sha256"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketFormatted = []byte("formatted")

// Cache records the content hash of files known to be clean, so repeated
// runs skip work on files nobody touched. It stores what the text looked
// like, not any parse state. The engine still parses every file it is
// handed.
type Cache struct {
	db *bolt.DB
}

// OpenCache opens (or creates) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("cache open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFormatted)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache init: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// IsClean reports whether the file's recorded hash matches its current
// contents. Unknown files are never clean.
func (c *Cache) IsClean(path, contents string) bool {
	sum := contentHash(contents)
	clean := false
	c.db.View(func(tx *bolt.Tx) error {
		stored := tx.Bucket(bucketFormatted).Get([]byte(path))
		clean = stored != nil && string(stored) == sum
		return nil
	})
	return clean
}

// MarkClean records the file's current contents as formatted.
func (c *Cache) MarkClean(path, contents string) error {
	sum := contentHash(contents)
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFormatted).Put([]byte(path), []byte(sum))
	})
}

// Forget drops the record for a path. Idempotent.
func (c *Cache) Forget(path string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFormatted).Delete([]byte(path))
	})
}

func contentHash(contents string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(contents)))
}

package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
	"textlab/internal/domain"
)

var (
	bucketSources = []byte("sources")
	bucketMeta    = []byte("meta")
	keySchema     = []byte("schema_version")
)

// SchemaVersion is bumped whenever the record layout changes.
const SchemaVersion = "1"

// BoltCache caches tokenized sentences per source file.
type BoltCache struct {
	db *bbolt.DB
}

// CacheStats describes the cache contents.
type CacheStats struct {
	Sources   int
	Sentences int
	Tokens    int
}

type sourceRecord struct {
	ModTime   int64      `json:"mod_time"`
	Size      int64      `json:"size"`
	Signature string     `json:"signature"`
	Sentences [][]string `json:"sentences"`
}

func NewBoltCache(path string) (*BoltCache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketSources, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		meta := tx.Bucket(bucketMeta)
		if v := meta.Get(keySchema); v != nil && string(v) != SchemaVersion {
			if err := tx.DeleteBucket(bucketSources); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(bucketSources); err != nil {
				return err
			}
		}
		return meta.Put(keySchema, []byte(SchemaVersion))
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltCache{db: db}, nil
}

// Get returns the cached sentences for src. A record whose modification
// time, size or tokenizer signature differs is a miss.
func (c *BoltCache) Get(src domain.Source, signature string) ([][]string, bool, error) {
	var rec sourceRecord
	found := false
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSources).Get([]byte(src.Path))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("corrupt cache record for %s: %w", src.Path, err)
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return nil, false, err
	}
	if rec.ModTime != src.ModTime || rec.Size != src.Size || rec.Signature != signature {
		return nil, false, nil
	}
	return rec.Sentences, true, nil
}

func (c *BoltCache) Put(src domain.Source, signature string, sentences [][]string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		rec := sourceRecord{
			ModTime:   src.ModTime,
			Size:      src.Size,
			Signature: signature,
			Sentences: sentences,
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketSources).Put([]byte(src.Path), data)
	})
}

func (c *BoltCache) Delete(path string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSources).Delete([]byte(path))
	})
}

// Clear drops every cached source.
func (c *BoltCache) Clear() error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketSources); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketSources)
		return err
	})
}

func (c *BoltCache) Stats() (CacheStats, error) {
	var stats CacheStats
	err := c.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSources).ForEach(func(k, v []byte) error {
			var rec sourceRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupt cache record for %s: %w", k, err)
			}
			stats.Sources++
			stats.Sentences += len(rec.Sentences)
			for _, s := range rec.Sentences {
				stats.Tokens += len(s)
			}
			return nil
		})
	})
	return stats, err
}

func (c *BoltCache) Close() error {
	return c.db.Close()
}

package stores

import (
	"context"
	"time"

	"github.com/reusee/gamesheet/loaders"
	bolt "go.etcd.io/bbolt"
)

const (
	bucketEntries  = "entries"
	bucketRemoved  = "removed"
	bucketMetadata = "metadata"

	keyPrelude = "prelude"
)

type Bolt struct {
	db *bolt.DB
}

var _ Store = new(Bolt)

func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketEntries, bucketRemoved, bucketMetadata} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Bolt{
		db: db,
	}, nil
}

func (b *Bolt) Load(ctx context.Context) (*loaders.Document, error) {
	doc := &loaders.Document{
		Entries: make(map[string]string),
	}
	err := b.db.View(func(tx *bolt.Tx) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc.Prelude = string(tx.Bucket([]byte(bucketMetadata)).Get([]byte(keyPrelude)))
		if err := tx.Bucket([]byte(bucketEntries)).ForEach(func(k, v []byte) error {
			doc.Entries[string(k)] = string(v)
			return nil
		}); err != nil {
			return err
		}
		// keys are iterated in byte order
		return tx.Bucket([]byte(bucketRemoved)).ForEach(func(k, _ []byte) error {
			doc.Removed = append(doc.Removed, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (b *Bolt) update(ctx context.Context, fn func(*bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(fn)
}

func (b *Bolt) PutEntry(ctx context.Context, name string, source string) error {
	return b.update(ctx, func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketRemoved)).Delete([]byte(name)); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketEntries)).Put([]byte(name), []byte(source))
	})
}

func (b *Bolt) DeleteEntry(ctx context.Context, name string) error {
	return b.update(ctx, func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketEntries)).Delete([]byte(name)); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketRemoved)).Put([]byte(name), []byte{})
	})
}

func (b *Bolt) PutPrelude(ctx context.Context, source string) error {
	return b.update(ctx, func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketMetadata)).Put([]byte(keyPrelude), []byte(source))
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

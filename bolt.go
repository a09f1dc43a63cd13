package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const boltBucketStorage = "storage" // key: storage key -> raw value

// BoltRepo is a key-value Storage backed by a bbolt file.
type BoltRepo struct {
	storage *bbolt.DB
}

func NewBoltRepo(path string) (*BoltRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketStorage))
		return err
	}); err != nil {
		_ = instance.Close()

		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltRepo{storage: instance}, nil
}

func (b *BoltRepo) Close() error {
	return b.storage.Close()
}

func (b *BoltRepo) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)

	err := b.storage.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(boltBucketStorage)).Get([]byte(key))
		if data == nil {
			return nil
		}

		// data is only valid inside the transaction
		value = string(data)
		found = true

		return nil
	})

	return value, found, err
}

func (b *BoltRepo) Set(key, value string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketStorage)).Put([]byte(key), []byte(value))
	})
}

func (b *BoltRepo) Delete(key string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketStorage)).Delete([]byte(key))
	})
}

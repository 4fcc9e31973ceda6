package store

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.etcd.io/bbolt"
)

const boltFile = "bbolt.db"

var (
	bucketDatasets = []byte("datasets")
	bucketResults  = []byte("results")
)

type boltStore struct {
	db *bbolt.DB
}

func openBolt(path string) (*boltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bbolt %s", path)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketDatasets, bucketResults} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create bbolt buckets")
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) PutDataset(name string, data []int64) error {
	return errors.Wrapf(s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDatasets).Put([]byte(name), encodeDataset(data))
	}), "bbolt put dataset %s", name)
}

func (s *boltStore) GetDataset(name string) ([]int64, error) {
	var data []int64
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketDatasets).Get([]byte(name))
		if raw == nil {
			return errors.Wrapf(ErrNotFound, "dataset %s", name)
		}
		// decode가 복사하므로 트랜잭션 밖에서도 안전
		var err error
		data, err = decodeDataset(raw)
		return err
	})
	return data, err
}

func (s *boltStore) Datasets() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDatasets).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, errors.Wrap(err, "bbolt list datasets")
}

func (s *boltStore) PutResult(r Result) error {
	val, err := encodeResult(r)
	if err != nil {
		return err
	}
	return errors.Wrap(s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketResults).Put(resultKey(r), val)
	}), "bbolt put result")
}

func (s *boltStore) Results() ([]Result, error) {
	var rs []Result
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketResults).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			r, err := decodeResult(v)
			if err != nil {
				return err
			}
			rs = append(rs, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortResults(rs)
	return rs, nil
}

func (s *boltStore) Close() error {
	return s.db.Close()
}

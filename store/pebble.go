package store

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

type pebbleStore struct {
	db *pebble.DB
}

func openPebble(dir string) (*pebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{Logger: kvLogger{backend: BackendPebble}})
	if err != nil {
		return nil, errors.Wrapf(err, "open pebble %s", dir)
	}
	return &pebbleStore{db: db}, nil
}

func (s *pebbleStore) PutDataset(name string, data []int64) error {
	batch := s.db.NewBatch()
	defer batch.Close()
	if err := batch.Set(datasetKey(name), encodeDataset(data), nil); err != nil {
		return errors.Wrapf(err, "pebble put dataset %s", name)
	}
	return errors.Wrapf(batch.Commit(pebble.Sync), "pebble commit dataset %s", name)
}

func (s *pebbleStore) GetDataset(name string) ([]int64, error) {
	raw, closer, err := s.db.Get(datasetKey(name))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "dataset %s", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "pebble get dataset %s", name)
	}
	defer closer.Close()
	return decodeDataset(raw)
}

// scan prefix 범위를 키 순서로 훑는다
func (s *pebbleStore) scan(prefix []byte, fn func(k, v []byte) error) error {
	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixEnd(prefix),
	})
	if err != nil {
		return errors.Wrap(err, "pebble iter")
	}
	for it.First(); it.Valid(); it.Next() {
		if err := fn(it.Key(), it.Value()); err != nil {
			it.Close()
			return err
		}
	}
	return errors.Wrap(it.Close(), "pebble iter close")
}

func (s *pebbleStore) Datasets() ([]string, error) {
	var names []string
	err := s.scan(datasetPrefix, func(k, _ []byte) error {
		names = append(names, string(k[len(datasetPrefix):]))
		return nil
	})
	return names, err
}

func (s *pebbleStore) PutResult(r Result) error {
	val, err := encodeResult(r)
	if err != nil {
		return err
	}
	return errors.Wrap(s.db.Set(resultKey(r), val, pebble.Sync), "pebble put result")
}

func (s *pebbleStore) Results() ([]Result, error) {
	var rs []Result
	err := s.scan(resultPrefix, func(_, v []byte) error {
		r, err := decodeResult(v)
		if err != nil {
			return err
		}
		rs = append(rs, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortResults(rs)
	return rs, nil
}

func (s *pebbleStore) Close() error {
	return s.db.Close()
}

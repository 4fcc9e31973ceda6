package store

import (
	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v3"
)

type badgerStore struct {
	db *badger.DB
}

func openBadger(dir string) (*badgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(kvLogger{backend: BackendBadger})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger %s", dir)
	}
	return &badgerStore{db: db}, nil
}

func (s *badgerStore) PutDataset(name string, data []int64) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	if err := wb.Set(datasetKey(name), encodeDataset(data)); err != nil {
		return errors.Wrapf(err, "badger put dataset %s", name)
	}
	return errors.Wrapf(wb.Flush(), "badger flush dataset %s", name)
}

func (s *badgerStore) GetDataset(name string) ([]int64, error) {
	var data []int64
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(datasetKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.Wrapf(ErrNotFound, "dataset %s", name)
		}
		if err != nil {
			return errors.Wrapf(err, "badger get dataset %s", name)
		}
		return item.Value(func(raw []byte) error {
			data, err = decodeDataset(raw)
			return err
		})
	})
	return data, err
}

func (s *badgerStore) Datasets() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = datasetPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(datasetPrefix); it.ValidForPrefix(datasetPrefix); it.Next() {
			names = append(names, string(it.Item().Key()[len(datasetPrefix):]))
		}
		return nil
	})
	return names, errors.Wrap(err, "badger list datasets")
}

func (s *badgerStore) PutResult(r Result) error {
	val, err := encodeResult(r)
	if err != nil {
		return err
	}
	return errors.Wrap(s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(resultKey(r), val)
	}), "badger put result")
}

func (s *badgerStore) Results() ([]Result, error) {
	var rs []Result
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = resultPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(resultPrefix); it.ValidForPrefix(resultPrefix); it.Next() {
			err := it.Item().Value(func(raw []byte) error {
				r, err := decodeResult(raw)
				if err != nil {
					return err
				}
				rs = append(rs, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortResults(rs)
	return rs, nil
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}

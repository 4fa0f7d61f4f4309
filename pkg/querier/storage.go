package querier

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/darkclainer/camtrans/pkg/lexicon"
)

type keyType byte

const (
	candidatesKey keyType = iota + 1
)

type cachedCandidatesKey string

func (k cachedCandidatesKey) MarshalBinary() ([]byte, error) {
	return marshalKey(string(k), candidatesKey), nil
}

func (k *cachedCandidatesKey) UnmarshalBinary(data []byte) error {
	unmarshalledKey, err := unmarshalKey(data, candidatesKey)
	if err != nil {
		return err
	}
	*k = cachedCandidatesKey(unmarshalledKey)
	return nil
}

func marshalKey(k string, t keyType) []byte {
	result := make([]byte, 0, len(k)+1)
	result = append(result, byte(t))
	return append(result, []byte(k)...)
}

func unmarshalKey(data []byte, expected keyType) (string, error) {
	if len(data) < 1 {
		return "", errors.New("key length must be at least 1")
	}
	if data[0] != byte(expected) {
		return "", fmt.Errorf("key type doesn't equal to expected type")
	}
	return string(data[1:]), nil
}

type CachedConfig struct {
	// Path is the badger directory. It is ignored if InMemory is set.
	Path     string
	InMemory bool
}

// Storage keeps looked up candidates in badger.
type Storage struct {
	DB *badger.DB
}

func OpenStorage(config *CachedConfig) (*Storage, error) {
	options := badger.DefaultOptions(config.Path).WithLogger(nil)
	if config.InMemory {
		options = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("can not open badger: %w", err)
	}
	return &Storage{DB: db}, nil
}

// GetCandidates returns badger.ErrKeyNotFound for lemmas never stored.
func (s *Storage) GetCandidates(lemma string) ([]lexicon.Candidate, error) {
	key, err := cachedCandidatesKey(lemma).MarshalBinary()
	if err != nil {
		return nil, err
	}
	var candidates []lexicon.Candidate
	err = s.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &candidates)
		})
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *Storage) PutCandidates(lemma string, candidates []lexicon.Candidate) error {
	key, err := cachedCandidatesKey(lemma).MarshalBinary()
	if err != nil {
		return err
	}
	if candidates == nil {
		candidates = []lexicon.Candidate{}
	}
	value, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("can not marshal candidates: %w", err)
	}
	return s.DB.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Lemmas returns every cached lemma.
func (s *Storage) Lemmas() ([]string, error) {
	var lemmas []string
	err := s.DB.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		prefix := []byte{byte(candidatesKey)}
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var key cachedCandidatesKey
			if err := key.UnmarshalBinary(it.Item().KeyCopy(nil)); err != nil {
				return err
			}
			lemmas = append(lemmas, string(key))
		}
		return nil
	})
	return lemmas, err
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

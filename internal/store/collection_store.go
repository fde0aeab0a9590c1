package store

import (
	"path/filepath"
	"sort"
	"sync"

	solana "github.com/gagliardetto/solana-go"

	"cnft/internal/domain"
)

const collectionsFilename = "collections.json"

// CollectionFileStore persists created collections to disk.
type CollectionFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewCollectionFileStore returns a CollectionFileStore rooted at dir.
func NewCollectionFileStore(dir string) *CollectionFileStore {
	return &CollectionFileStore{dir: dir}
}

// SaveCollection stores or replaces the record for rec.Mint.
func (s *CollectionFileStore) SaveCollection(rec domain.CollectionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, collectionsFilename)
	m := map[solana.PublicKey]domain.CollectionRecord{}
	if err := readJSON(path, &m); err != nil {
		return err
	}
	m[rec.Mint] = rec
	return writeJSON(path, m, 0o600)
}

// LoadCollection retrieves the record for mint.
func (s *CollectionFileStore) LoadCollection(mint solana.PublicKey) (domain.CollectionRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, collectionsFilename)
	m := map[solana.PublicKey]domain.CollectionRecord{}
	if err := readJSON(path, &m); err != nil {
		return domain.CollectionRecord{}, false, err
	}
	rec, ok := m[mint]
	return rec, ok, nil
}

// ListCollections returns all records, oldest first.
func (s *CollectionFileStore) ListCollections() ([]domain.CollectionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, collectionsFilename)
	m := map[solana.PublicKey]domain.CollectionRecord{}
	if err := readJSON(path, &m); err != nil {
		return nil, err
	}
	out := make([]domain.CollectionRecord, 0, len(m))
	for _, rec := range m {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Compile-time assertion that CollectionFileStore implements domain.CollectionStore.
var _ domain.CollectionStore = (*CollectionFileStore)(nil)

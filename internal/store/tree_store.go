package store

import (
	"path/filepath"
	"sort"
	"sync"

	solana "github.com/gagliardetto/solana-go"

	"cnft/internal/domain"
)

const treesFilename = "trees.json"

// TreeFileStore persists allocated Merkle trees to disk.
type TreeFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewTreeFileStore returns a TreeFileStore rooted at dir.
func NewTreeFileStore(dir string) *TreeFileStore {
	return &TreeFileStore{dir: dir}
}

// SaveTree stores or replaces the record for rec.Address.
func (s *TreeFileStore) SaveTree(rec domain.TreeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, treesFilename)
	m := map[solana.PublicKey]domain.TreeRecord{}
	if err := readJSON(path, &m); err != nil {
		return err
	}
	m[rec.Address] = rec
	return writeJSON(path, m, 0o600)
}

// LoadTree retrieves the record for address.
func (s *TreeFileStore) LoadTree(address solana.PublicKey) (domain.TreeRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, treesFilename)
	m := map[solana.PublicKey]domain.TreeRecord{}
	if err := readJSON(path, &m); err != nil {
		return domain.TreeRecord{}, false, err
	}
	rec, ok := m[address]
	return rec, ok, nil
}

// ListTrees returns all records, oldest first.
func (s *TreeFileStore) ListTrees() ([]domain.TreeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, treesFilename)
	m := map[solana.PublicKey]domain.TreeRecord{}
	if err := readJSON(path, &m); err != nil {
		return nil, err
	}
	out := make([]domain.TreeRecord, 0, len(m))
	for _, rec := range m {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Compile-time assertion that TreeFileStore implements domain.TreeStore.
var _ domain.TreeStore = (*TreeFileStore)(nil)

package store

import (
	"path/filepath"
	"sync"

	solana "github.com/gagliardetto/solana-go"

	"cnft/internal/domain"
)

const mintsFilename = "mints.json"

// MintFileStore keeps an append-only list of mint receipts.
type MintFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewMintFileStore returns a MintFileStore rooted at dir.
func NewMintFileStore(dir string) *MintFileStore {
	return &MintFileStore{dir: dir}
}

// AppendReceipt adds r to the end of the list.
func (s *MintFileStore) AppendReceipt(r domain.MintReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, mintsFilename)
	var receipts []domain.MintReceipt
	if err := readJSON(path, &receipts); err != nil {
		return err
	}
	receipts = append(receipts, r)
	return writeJSON(path, receipts, 0o600)
}

// ListReceipts returns receipts in mint order. A zero tree returns all of them.
func (s *MintFileStore) ListReceipts(tree solana.PublicKey) ([]domain.MintReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, mintsFilename)
	var receipts []domain.MintReceipt
	if err := readJSON(path, &receipts); err != nil {
		return nil, err
	}
	if tree.IsZero() {
		return receipts, nil
	}
	out := receipts[:0]
	for _, r := range receipts {
		if r.Tree == tree {
			out = append(out, r)
		}
	}
	return out, nil
}

// Compile-time assertion that MintFileStore implements domain.MintStore.
var _ domain.MintStore = (*MintFileStore)(nil)

package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"cnft/internal/crypto"
	"cnft/internal/domain"
)

const keystoreFilename = "keypair.enc"

// ErrNoKeystore is returned when no keypair has been saved yet.
var ErrNoKeystore = errors.New("no keypair stored; run keygen or import-keypair first")

// KeystoreFileStore persists the payer keypair encrypted with a passphrase.
type KeystoreFileStore struct {
	dir string
	kdf crypto.KDFParams
	mu  sync.Mutex
}

// NewKeystoreFileStore returns a KeystoreFileStore rooted at dir.
func NewKeystoreFileStore(dir string, kdf crypto.KDFParams) *KeystoreFileStore {
	return &KeystoreFileStore{dir: dir, kdf: kdf}
}

// SaveKeypair encrypts and writes the keypair to disk.
func (s *KeystoreFileStore) SaveKeypair(passphrase string, k *crypto.Keypair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	secret := k.SecretKey()
	defer crypto.Wipe(secret)

	blob, err := crypto.Seal(passphrase, secret, s.kdf)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.dir, keystoreFilename), blob, 0o600)
}

// LoadKeypair reads and decrypts the keypair.
func (s *KeystoreFileStore) LoadKeypair(passphrase string) (*crypto.Keypair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := readFile(filepath.Join(s.dir, keystoreFilename))
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, ErrNoKeystore
	}
	secret, err := crypto.Open(passphrase, blob)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(secret)
	return crypto.KeypairFromSecretKey(secret)
}

// Exists reports whether a keystore file is present.
func (s *KeystoreFileStore) Exists() (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, keystoreFilename))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Compile-time assertion that KeystoreFileStore implements domain.KeystoreStore.
var _ domain.KeystoreStore = (*KeystoreFileStore)(nil)

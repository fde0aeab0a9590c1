package signer

import (
	"errors"
	"fmt"
	"unicode"

	"cnft/internal/crypto"
	"cnft/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
	// ErrKeystoreExists guards against silently replacing a funded keypair.
	ErrKeystoreExists = errors.New("a keypair is already stored; pass --force to replace it")
)

// Service manages the payer keypair using a backing store.
type Service struct {
	store       domain.KeystoreStore
	keypairPath string
}

// New returns a signer service backed by store. A non-empty keypairPath makes
// Load read that Solana CLI keypair file instead.
func New(store domain.KeystoreStore, keypairPath string) *Service {
	return &Service{store: store, keypairPath: keypairPath}
}

// Generate creates a new keypair and saves it encrypted with passphrase.
func (s *Service) Generate(passphrase string, force bool) (*crypto.Keypair, error) {
	if err := s.checkWritable(passphrase, force); err != nil {
		return nil, err
	}
	k, err := crypto.GenerateKeypair()
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveKeypair(passphrase, k); err != nil {
		return nil, err
	}
	return k, nil
}

// Import reads a Solana CLI keypair file and saves it encrypted with passphrase.
func (s *Service) Import(passphrase, path string, force bool) (*crypto.Keypair, error) {
	if err := s.checkWritable(passphrase, force); err != nil {
		return nil, err
	}
	k, err := crypto.ReadKeypairFile(path)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	if err := s.store.SaveKeypair(passphrase, k); err != nil {
		return nil, err
	}
	return k, nil
}

// Export writes the stored keypair to path in the Solana CLI format.
func (s *Service) Export(passphrase, path string) error {
	k, err := s.Load(passphrase)
	if err != nil {
		return err
	}
	defer k.Wipe()
	return crypto.WriteKeypairFile(path, k)
}

// Load returns the payer keypair.
func (s *Service) Load(passphrase string) (*crypto.Keypair, error) {
	if s.keypairPath != "" {
		return crypto.ReadKeypairFile(s.keypairPath)
	}
	return s.store.LoadKeypair(passphrase)
}

func (s *Service) checkWritable(passphrase string, force bool) error {
	if !isSecurePassphrase(passphrase) {
		return ErrWeakPassphrase
	}
	exists, err := s.store.Exists()
	if err != nil {
		return err
	}
	if exists && !force {
		return ErrKeystoreExists
	}
	return nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

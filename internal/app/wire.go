package app

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"cnft/internal/crypto"
	"cnft/internal/rpc"
	"cnft/internal/services/collection"
	"cnft/internal/services/mint"
	"cnft/internal/services/signer"
	"cnft/internal/services/tree"
	"cnft/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config      Config
	Signer      *signer.Service
	Chain       *rpc.Client
	Collections *collection.Service
	Trees       *tree.Service
	Mints       *mint.Service
	HTTP        *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("create home %s: %w", cfg.Home, err)
	}

	kdf := crypto.DefaultKDF()
	if cfg.KDF == crypto.KDFArgon2id {
		kdf = crypto.Argon2idKDF()
	}

	// File-based stores
	keystore := store.NewKeystoreFileStore(cfg.Home, kdf)
	collections := store.NewCollectionFileStore(cfg.Home)
	trees := store.NewTreeFileStore(cfg.Home)
	receipts := store.NewMintFileStore(cfg.Home)

	httpClient := &http.Client{Timeout: 30 * time.Second}

	// RPC client shares the HTTP client with metadata fetches.
	chain := rpc.New(cfg.RPCURL, rpc.Options{
		HTTP:           httpClient,
		Commitment:     cfg.Commitment,
		RateLimit:      rate.Limit(cfg.RequestsPerSec),
		ConfirmTimeout: cfg.ConfirmTimeout,
	})

	return &Wire{
		Config:      cfg,
		Signer:      signer.New(keystore, cfg.KeypairPath),
		Chain:       chain,
		Collections: collection.New(chain, collections),
		Trees:       tree.New(chain, trees),
		Mints:       mint.New(chain, trees, collections, receipts, cfg.MintsPerSec),
		HTTP:        httpClient,
	}, nil
}

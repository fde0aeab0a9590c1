package tree

import (
	"context"
	"errors"
	"fmt"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/rs/zerolog"

	"cnft/internal/crypto"
	"cnft/internal/domain"
	"cnft/internal/log"
	"cnft/internal/mpl"
	"cnft/internal/services/txn"
)

var ErrNoPayer = errors.New("tree: payer keypair required")

// Shape is the geometry of a new tree.
type Shape struct {
	MaxDepth      uint32
	MaxBufferSize uint32
	CanopyDepth   uint32
	// Public lets anyone mint into the tree, not only its creator.
	Public bool
}

// Service allocates Merkle trees.
type Service struct {
	chain  domain.ChainClient
	store  domain.TreeStore
	now    func() time.Time
	newKey func() (*crypto.Keypair, error)
	logger zerolog.Logger
}

// New returns a tree service.
func New(chain domain.ChainClient, store domain.TreeStore) *Service {
	return &Service{
		chain:  chain,
		store:  store,
		now:    time.Now,
		newKey: crypto.GenerateKeypair,
		logger: log.WithComponent("tree"),
	}
}

// Cost returns the account size and rent-exempt balance a tree of shape needs.
func (s *Service) Cost(ctx context.Context, shape Shape) (size, lamports uint64, err error) {
	if err := mpl.ValidateTreeShape(shape.MaxDepth, shape.MaxBufferSize, shape.CanopyDepth); err != nil {
		return 0, 0, err
	}
	size = mpl.MerkleTreeAccountSize(shape.MaxDepth, shape.MaxBufferSize, shape.CanopyDepth)
	lamports, err = s.chain.MinimumBalanceForRentExemption(ctx, size)
	if err != nil {
		return 0, 0, fmt.Errorf("tree rent: %w", err)
	}
	return size, lamports, nil
}

// Create allocates the tree account, owned by the account compression
// program, and initialises its Bubblegum tree config in the same
// transaction. The payer becomes the tree creator.
func (s *Service) Create(ctx context.Context, payer *crypto.Keypair, shape Shape) (domain.TreeRecord, error) {
	var rec domain.TreeRecord
	if payer == nil {
		return rec, ErrNoPayer
	}
	size, lamports, err := s.Cost(ctx, shape)
	if err != nil {
		return rec, err
	}

	treeKey, err := s.newKey()
	if err != nil {
		return rec, fmt.Errorf("generate tree: %w", err)
	}
	defer treeKey.Wipe()
	address := treeKey.PublicKey()
	config, err := mpl.TreeConfigAddress(address)
	if err != nil {
		return rec, err
	}

	creator := payer.PublicKey()
	public := shape.Public
	allocate, err := system.NewCreateAccountInstruction(lamports, size, mpl.AccountCompressionProgramID, creator, address).ValidateAndBuild()
	if err != nil {
		return rec, fmt.Errorf("allocate tree: %w", err)
	}
	createConfig, err := mpl.CreateTreeConfig(mpl.CreateTreeConfigAccounts{
		TreeConfig:  config,
		MerkleTree:  address,
		Payer:       creator,
		TreeCreator: creator,
	}, shape.MaxDepth, shape.MaxBufferSize, &public)
	if err != nil {
		return rec, err
	}
	ixs := []solana.Instruction{allocate, createConfig}
	s.logger.Debug().
		Str("tree", address.String()).
		Uint64("size", size).
		Uint64("lamports", lamports).
		Msg("allocating tree")

	sig, err := txn.Send(ctx, s.chain, ixs, payer, treeKey)
	if err != nil {
		return rec, fmt.Errorf("create tree: %w", err)
	}

	rec = domain.TreeRecord{
		Address:       address,
		TreeConfig:    config,
		Creator:       creator,
		MaxDepth:      shape.MaxDepth,
		MaxBufferSize: shape.MaxBufferSize,
		CanopyDepth:   shape.CanopyDepth,
		Public:        shape.Public,
		AccountSize:   size,
		Lamports:      lamports,
		Signature:     sig,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.SaveTree(rec); err != nil {
		return rec, fmt.Errorf("record tree %s: %w", address, err)
	}
	s.logger.Info().
		Str("tree", address.String()).
		Uint64("capacity", rec.Capacity()).
		Str("signature", sig).
		Msg("tree created")
	return rec, nil
}

// Get returns a recorded tree by address.
func (s *Service) Get(address solana.PublicKey) (domain.TreeRecord, bool, error) {
	return s.store.LoadTree(address)
}

// List returns all recorded trees.
func (s *Service) List() ([]domain.TreeRecord, error) {
	return s.store.ListTrees()
}

package collection

import (
	"context"
	"errors"
	"fmt"
	"time"

	solana "github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/rs/zerolog"

	"cnft/internal/crypto"
	"cnft/internal/domain"
	"cnft/internal/log"
	"cnft/internal/mpl"
	"cnft/internal/services/txn"
)

// ErrNoPayer is returned when Create is called without a payer keypair.
var ErrNoPayer = errors.New("collection: payer keypair required")

// Input describes the collection NFT to create.
type Input struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             []mpl.Creator
}

// Service creates collection NFTs and records them.
type Service struct {
	chain  domain.ChainClient
	store  domain.CollectionStore
	now    func() time.Time
	newKey func() (*crypto.Keypair, error)
	logger zerolog.Logger
}

// New returns a collection service.
func New(chain domain.ChainClient, store domain.CollectionStore) *Service {
	return &Service{
		chain:  chain,
		store:  store,
		now:    time.Now,
		newKey: crypto.GenerateKeypair,
		logger: log.WithComponent("collection"),
	}
}

// Create mints a 0-decimal, supply-1 token with sized collection metadata and
// a master edition capped at zero prints, all in one transaction. The payer is
// mint authority, update authority, and holder of the single token.
func (s *Service) Create(ctx context.Context, payer *crypto.Keypair, in Input) (domain.CollectionRecord, error) {
	var rec domain.CollectionRecord
	if payer == nil {
		return rec, ErrNoPayer
	}
	if err := mpl.ValidateMetadataFields(in.Name, in.Symbol, in.URI, in.SellerFeeBasisPoints, in.Creators); err != nil {
		return rec, err
	}
	authority := payer.PublicKey()
	if err := mpl.CheckVerifiedCreators(in.Creators, authority); err != nil {
		return rec, err
	}

	mint, err := s.newKey()
	if err != nil {
		return rec, fmt.Errorf("generate mint: %w", err)
	}
	defer mint.Wipe()
	mintKey := mint.PublicKey()

	ata, _, err := solana.FindAssociatedTokenAddress(authority, mintKey)
	if err != nil {
		return rec, err
	}
	metadataKey, err := mpl.MetadataAddress(mintKey)
	if err != nil {
		return rec, err
	}
	edition, err := mpl.MasterEditionAddress(mintKey)
	if err != nil {
		return rec, err
	}
	rent, err := s.chain.MinimumBalanceForRentExemption(ctx, token.MINT_SIZE)
	if err != nil {
		return rec, fmt.Errorf("mint rent: %w", err)
	}

	ixs, err := collectionInstructions(in, authority, mintKey, ata, metadataKey, edition, rent)
	if err != nil {
		return rec, fmt.Errorf("build collection %q: %w", in.Name, err)
	}

	sig, err := txn.Send(ctx, s.chain, ixs, payer, mint)
	if err != nil {
		return rec, fmt.Errorf("create collection %q: %w", in.Name, err)
	}

	rec = domain.CollectionRecord{
		Name:          in.Name,
		Symbol:        in.Symbol,
		URI:           in.URI,
		Mint:          mintKey,
		Metadata:      metadataKey,
		MasterEdition: edition,
		TokenAccount:  ata,
		Authority:     authority,
		Signature:     sig,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.SaveCollection(rec); err != nil {
		return rec, fmt.Errorf("record collection %s: %w", mintKey, err)
	}
	s.logger.Info().
		Str("mint", mintKey.String()).
		Str("signature", sig).
		Msg("collection created")
	return rec, nil
}

// collectionInstructions creates and initialises the mint, mints the single
// token to the authority's associated account, then attaches sized metadata
// and a zero-supply master edition.
func collectionInstructions(in Input, authority, mint, ata, metadataKey, edition solana.PublicKey, rent uint64) ([]solana.Instruction, error) {
	createMint, err := system.NewCreateAccountInstruction(rent, token.MINT_SIZE, token.ProgramID, authority, mint).ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	initMint, err := token.NewInitializeMint2Instruction(0, authority, authority, mint).ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	createATA, err := associatedtokenaccount.NewCreateInstruction(authority, authority, mint).ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	mintOne, err := token.NewMintToInstruction(1, mint, ata, authority, nil).ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	createMetadata, err := mpl.CreateMetadataAccountV3(mpl.CreateMetadataAccountV3Accounts{
		Metadata:        metadataKey,
		Mint:            mint,
		MintAuthority:   authority,
		Payer:           authority,
		UpdateAuthority: authority,
	}, mpl.DataV2{
		Name:                 in.Name,
		Symbol:               in.Symbol,
		URI:                  in.URI,
		SellerFeeBasisPoints: in.SellerFeeBasisPoints,
		Creators:             in.Creators,
	}, true, true)
	if err != nil {
		return nil, err
	}
	maxSupply := uint64(0)
	createEdition, err := mpl.CreateMasterEditionV3(mpl.CreateMasterEditionV3Accounts{
		Edition:         edition,
		Mint:            mint,
		UpdateAuthority: authority,
		MintAuthority:   authority,
		Payer:           authority,
		Metadata:        metadataKey,
	}, &maxSupply)
	if err != nil {
		return nil, err
	}
	return []solana.Instruction{createMint, initMint, createATA, mintOne, createMetadata, createEdition}, nil
}

// Get returns a recorded collection by mint.
func (s *Service) Get(mint solana.PublicKey) (domain.CollectionRecord, bool, error) {
	return s.store.LoadCollection(mint)
}

// List returns all recorded collections.
func (s *Service) List() ([]domain.CollectionRecord, error) {
	return s.store.ListCollections()
}

package mint

import (
	"context"
	"errors"
	"fmt"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"cnft/internal/crypto"
	"cnft/internal/domain"
	"cnft/internal/log"
	"cnft/internal/mpl"
	"cnft/internal/services/txn"
)

var (
	ErrNoPayer                = errors.New("mint: payer keypair required")
	ErrNoRecipients           = errors.New("mint: no recipients")
	ErrUnknownTree            = errors.New("mint: tree not recorded; create it with this tool first")
	ErrNotTreeCreator         = errors.New("mint: tree is private and payer is not its creator")
	ErrNotCollectionAuthority = errors.New("mint: payer is not the collection update authority")
	ErrTreeFull               = errors.New("mint: not enough free leaves in tree")
)

// Item is the leaf metadata shared by every NFT in a run.
type Item struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             []mpl.Creator
}

// Request is one minting run.
type Request struct {
	Tree solana.PublicKey
	// Collection is the collection mint; zero mints without a collection.
	Collection solana.PublicKey
	Recipients []solana.PublicKey
	Item       Item
}

// Result reports the receipts written by a run.
type Result struct {
	RunID    string
	Receipts []domain.MintReceipt
}

// Service mints compressed NFTs.
type Service struct {
	chain       domain.ChainClient
	trees       domain.TreeStore
	collections domain.CollectionStore
	receipts    domain.MintStore
	limiter     *rate.Limiter
	now         func() time.Time
	logger      zerolog.Logger
}

// New returns a mint service issuing at most perSecond mints per second.
func New(
	chain domain.ChainClient,
	trees domain.TreeStore,
	collections domain.CollectionStore,
	receipts domain.MintStore,
	perSecond float64,
) *Service {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Service{
		chain:       chain,
		trees:       trees,
		collections: collections,
		receipts:    receipts,
		limiter:     rate.NewLimiter(limit, 1),
		now:         time.Now,
		logger:      log.WithComponent("mint"),
	}
}

// Mint sends one mint per recipient in order. On failure it returns the
// receipts of the mints that did confirm together with the error.
func (s *Service) Mint(ctx context.Context, payer *crypto.Keypair, req Request) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	if payer == nil {
		return res, ErrNoPayer
	}
	if len(req.Recipients) == 0 {
		return res, ErrNoRecipients
	}
	authority := payer.PublicKey()
	it := req.Item
	if err := mpl.ValidateMetadataFields(it.Name, it.Symbol, it.URI, it.SellerFeeBasisPoints, it.Creators); err != nil {
		return res, err
	}
	if err := mpl.CheckVerifiedCreators(it.Creators, authority); err != nil {
		return res, err
	}

	tree, err := s.checkTree(req.Tree, authority, len(req.Recipients))
	if err != nil {
		return res, err
	}
	build, err := s.builder(tree, req.Collection, authority)
	if err != nil {
		return res, err
	}

	logger := s.logger.With().
		Str("run_id", res.RunID).
		Str("tree", tree.Address.String()).
		Logger()
	logger.Info().Int("recipients", len(req.Recipients)).Msg("mint run started")

	for i, owner := range req.Recipients {
		if err := s.limiter.Wait(ctx); err != nil {
			return res, err
		}
		ix, err := build(owner, s.leafMetadata(it, req.Collection))
		if err != nil {
			return res, fmt.Errorf("build mint to %s: %w", owner, err)
		}
		sig, err := txn.Send(ctx, s.chain, []solana.Instruction{ix}, payer)
		if err != nil {
			logger.Error().Err(err).Int("index", i).Str("owner", owner.String()).Msg("mint failed")
			return res, fmt.Errorf("mint %d/%d to %s: %w", i+1, len(req.Recipients), owner, err)
		}
		r := domain.MintReceipt{
			RunID:      res.RunID,
			Tree:       tree.Address,
			Collection: req.Collection,
			Owner:      owner,
			Name:       it.Name,
			URI:        it.URI,
			Signature:  sig,
			MintedAt:   s.now().UTC(),
		}
		if err := s.receipts.AppendReceipt(r); err != nil {
			return res, fmt.Errorf("record mint %s: %w", sig, err)
		}
		res.Receipts = append(res.Receipts, r)
		logger.Info().Str("owner", owner.String()).Str("signature", sig).Msg("minted")
	}
	return res, nil
}

// Receipts lists recorded mints into tree, or all mints when tree is zero.
func (s *Service) Receipts(tree solana.PublicKey) ([]domain.MintReceipt, error) {
	return s.receipts.ListReceipts(tree)
}

func (s *Service) checkTree(address, authority solana.PublicKey, n int) (domain.TreeRecord, error) {
	tree, ok, err := s.trees.LoadTree(address)
	if err != nil {
		return tree, err
	}
	if !ok {
		return tree, fmt.Errorf("%w: %s", ErrUnknownTree, address)
	}
	if !tree.Public && tree.Creator != authority {
		return tree, ErrNotTreeCreator
	}
	minted, err := s.receipts.ListReceipts(address)
	if err != nil {
		return tree, err
	}
	if used := uint64(len(minted)); used+uint64(n) > tree.Capacity() {
		return tree, fmt.Errorf("%w: %d used of %d, %d requested", ErrTreeFull, used, tree.Capacity(), n)
	}
	return tree, nil
}

type buildFunc func(owner solana.PublicKey, md mpl.MetadataArgs) (solana.Instruction, error)

// builder resolves the accounts shared by every mint of a run.
func (s *Service) builder(tree domain.TreeRecord, collection, authority solana.PublicKey) (buildFunc, error) {
	base := func(owner solana.PublicKey) mpl.MintV1Accounts {
		return mpl.MintV1Accounts{
			TreeConfig:            tree.TreeConfig,
			LeafOwner:             owner,
			LeafDelegate:          owner,
			MerkleTree:            tree.Address,
			Payer:                 authority,
			TreeCreatorOrDelegate: authority,
		}
	}
	if collection.IsZero() {
		return func(owner solana.PublicKey, md mpl.MetadataArgs) (solana.Instruction, error) {
			return mpl.MintV1(base(owner), md)
		}, nil
	}

	if rec, ok, err := s.collections.LoadCollection(collection); err != nil {
		return nil, err
	} else if ok && rec.Authority != authority {
		return nil, ErrNotCollectionAuthority
	}
	md, err := mpl.MetadataAddress(collection)
	if err != nil {
		return nil, err
	}
	edition, err := mpl.MasterEditionAddress(collection)
	if err != nil {
		return nil, err
	}
	signer, err := mpl.BubblegumSignerAddress()
	if err != nil {
		return nil, err
	}
	return func(owner solana.PublicKey, args mpl.MetadataArgs) (solana.Instruction, error) {
		return mpl.MintToCollectionV1(mpl.MintToCollectionV1Accounts{
			MintV1Accounts:      base(owner),
			CollectionAuthority: authority,
			CollectionMint:      collection,
			CollectionMetadata:  md,
			CollectionEdition:   edition,
			BubblegumSigner:     signer,
		}, args)
	}, nil
}

func (s *Service) leafMetadata(it Item, collection solana.PublicKey) mpl.MetadataArgs {
	standard := mpl.TokenStandardNonFungible
	md := mpl.MetadataArgs{
		Name:                 it.Name,
		Symbol:               it.Symbol,
		URI:                  it.URI,
		SellerFeeBasisPoints: it.SellerFeeBasisPoints,
		IsMutable:            true,
		TokenStandard:        &standard,
		Creators:             it.Creators,
	}
	if !collection.IsZero() {
		// Bubblegum sets the verified flag itself during mint_to_collection_v1.
		md.Collection = &mpl.Collection{Key: collection}
	}
	return md
}

package collection_test

import (
	"context"
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnft/internal/constants"
	"cnft/internal/crypto"
	"cnft/internal/mpl"
	"cnft/internal/services/chaintest"
	"cnft/internal/services/collection"
	"cnft/internal/store"
)

func defaultInput() collection.Input {
	return collection.Input{
		Name:     constants.COLLECTION_NAME,
		Symbol:   constants.COLLECTION_SYMBOL,
		URI:      constants.METADATA_COLLECTION_URL,
		Creators: constants.Creators(),
	}
}

func TestCreate(t *testing.T) {
	chain := chaintest.New()
	st := store.NewCollectionFileStore(t.TempDir())
	svc := collection.New(chain, st)
	payer, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	rec, err := svc.Create(context.Background(), payer, defaultInput())
	require.NoError(t, err)

	txs := chain.Transactions()
	require.Len(t, txs, 1)
	msg := txs[0].Message
	assert.Len(t, msg.Instructions, 6)
	assert.Equal(t, uint8(2), msg.Header.NumRequiredSignatures)
	assert.Equal(t, payer.PublicKey(), msg.AccountKeys[0])
	assert.Equal(t, []uint64{token.MINT_SIZE}, chain.RentSizes)

	wantMD, err := mpl.MetadataAddress(rec.Mint)
	require.NoError(t, err)
	wantEd, err := mpl.MasterEditionAddress(rec.Mint)
	require.NoError(t, err)
	assert.Equal(t, wantMD, rec.Metadata)
	assert.Equal(t, wantEd, rec.MasterEdition)
	assert.Equal(t, payer.PublicKey(), rec.Authority)
	assert.Equal(t, txs[0].Signatures[0].String(), rec.Signature)

	wantATA, _, err := solana.FindAssociatedTokenAddress(payer.PublicKey(), rec.Mint)
	require.NoError(t, err)
	assert.Equal(t, wantATA, rec.TokenAccount)
	programs, err := txs[0].GetProgramIDs()
	require.NoError(t, err)
	assert.Equal(t, solana.PublicKeySlice{
		solana.SystemProgramID,
		solana.TokenProgramID,
		solana.SPLAssociatedTokenAccountProgramID,
		solana.TokenProgramID,
		solana.TokenMetadataProgramID,
		solana.TokenMetadataProgramID,
	}, programs)

	got, ok, err := svc.Get(rec.Mint)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.Name, got.Name)

	all, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreate_Validation(t *testing.T) {
	chain := chaintest.New()
	svc := collection.New(chain, store.NewCollectionFileStore(t.TempDir()))
	payer, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), nil, defaultInput())
	assert.ErrorIs(t, err, collection.ErrNoPayer)

	in := defaultInput()
	in.Symbol = "WAY-TOO-LONG-SYMBOL"
	_, err = svc.Create(context.Background(), payer, in)
	assert.ErrorIs(t, err, mpl.ErrSymbolTooLong)

	in = defaultInput()
	in.Creators = []mpl.Creator{{Address: payer.PublicKey(), Share: 60}}
	_, err = svc.Create(context.Background(), payer, in)
	assert.ErrorIs(t, err, mpl.ErrInvalidShares)

	in = defaultInput()
	in.Creators[0].Verified = true
	_, err = svc.Create(context.Background(), payer, in)
	assert.ErrorIs(t, err, mpl.ErrUnsignedCreator)

	in = defaultInput()
	in.Creators = []mpl.Creator{
		{Address: payer.PublicKey(), Share: 50},
		{Address: payer.PublicKey(), Share: 50},
	}
	_, err = svc.Create(context.Background(), payer, in)
	assert.ErrorIs(t, err, mpl.ErrDuplicateCreator)

	assert.Empty(t, chain.Transactions())
}

func TestCreate_RejectedIsNotRecorded(t *testing.T) {
	chain := chaintest.New()
	st := store.NewCollectionFileStore(t.TempDir())
	svc := collection.New(chain, st)
	payer, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), payer, defaultInput())
	require.NoError(t, err)

	chain.FailAfter = 1
	_, err = svc.Create(context.Background(), payer, defaultInput())
	assert.ErrorIs(t, err, chaintest.ErrRejected)

	all, err := st.ListCollections()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

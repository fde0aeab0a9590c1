package tree_test

import (
	"context"
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnft/internal/constants"
	"cnft/internal/crypto"
	"cnft/internal/mpl"
	"cnft/internal/services/chaintest"
	"cnft/internal/services/tree"
	"cnft/internal/store"
)

var defaultShape = tree.Shape{
	MaxDepth:      constants.MERKLE_MAX_DEPTH,
	MaxBufferSize: constants.MERKLE_MAX_BUFFER_SIZE,
	Public:        true,
}

func TestCost(t *testing.T) {
	chain := chaintest.New()
	svc := tree.New(chain, store.NewTreeFileStore(t.TempDir()))

	size, lamports, err := svc.Cost(context.Background(), defaultShape)
	require.NoError(t, err)
	assert.Equal(t, uint64(31800), size)
	assert.Equal(t, (size+128)*chain.RentPerByte, lamports)

	_, _, err = svc.Cost(context.Background(), tree.Shape{MaxDepth: 14, MaxBufferSize: 65})
	assert.Error(t, err)
	_, _, err = svc.Cost(context.Background(), tree.Shape{MaxDepth: 14, MaxBufferSize: 64, CanopyDepth: 14})
	assert.Error(t, err)
	_, _, err = svc.Cost(context.Background(), tree.Shape{MaxDepth: 30, MaxBufferSize: 1024, CanopyDepth: 29})
	assert.ErrorIs(t, err, mpl.ErrTreeTooLarge)
	assert.Len(t, chain.RentSizes, 1, "rejected shapes never reach the node")
}

func TestCost_SmallTrees(t *testing.T) {
	chain := chaintest.New()
	svc := tree.New(chain, store.NewTreeFileStore(t.TempDir()))

	for _, shape := range []tree.Shape{
		{MaxDepth: 6, MaxBufferSize: 16},
		{MaxDepth: 13, MaxBufferSize: 32, CanopyDepth: 4},
	} {
		size, _, err := svc.Cost(context.Background(), shape)
		require.NoError(t, err)
		assert.Equal(t, mpl.MerkleTreeAccountSize(shape.MaxDepth, shape.MaxBufferSize, shape.CanopyDepth), size)
	}
}

func TestCreate(t *testing.T) {
	chain := chaintest.New()
	svc := tree.New(chain, store.NewTreeFileStore(t.TempDir()))
	payer, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	rec, err := svc.Create(context.Background(), payer, defaultShape)
	require.NoError(t, err)

	txs := chain.Transactions()
	require.Len(t, txs, 1)
	msg := txs[0].Message
	require.Len(t, msg.Instructions, 2)
	assert.Equal(t, uint8(2), msg.Header.NumRequiredSignatures)
	assert.Equal(t, solana.SystemProgramID, msg.AccountKeys[msg.Instructions[0].ProgramIDIndex])
	assert.Equal(t, mpl.BubblegumProgramID, msg.AccountKeys[msg.Instructions[1].ProgramIDIndex])

	wantConfig, err := mpl.TreeConfigAddress(rec.Address)
	require.NoError(t, err)
	assert.Equal(t, wantConfig, rec.TreeConfig)
	assert.Equal(t, payer.PublicKey(), rec.Creator)
	assert.Equal(t, uint64(1<<14), rec.Capacity())
	assert.True(t, rec.Public)

	got, ok, err := svc.Get(rec.Address)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.Signature, got.Signature)
}

func TestCreate_NoPayer(t *testing.T) {
	svc := tree.New(chaintest.New(), store.NewTreeFileStore(t.TempDir()))
	_, err := svc.Create(context.Background(), nil, defaultShape)
	assert.ErrorIs(t, err, tree.ErrNoPayer)
}

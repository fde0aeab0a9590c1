package txn_test

import (
	"context"
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnft/internal/crypto"
	"cnft/internal/services/chaintest"
	"cnft/internal/services/txn"
)

func newKeypair(t *testing.T) *crypto.Keypair {
	t.Helper()
	k, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	return k
}

func createAccount(t *testing.T, payer, account solana.PublicKey) solana.Instruction {
	t.Helper()
	ix, err := system.NewCreateAccountInstruction(1, 0, solana.SystemProgramID, payer, account).ValidateAndBuild()
	require.NoError(t, err)
	return ix
}

func TestSend(t *testing.T) {
	chain := chaintest.New()
	payer := newKeypair(t)
	to := newKeypair(t)

	ix := createAccount(t, payer.PublicKey(), to.PublicKey())
	sig, err := txn.Send(context.Background(), chain, []solana.Instruction{ix}, payer, to)
	require.NoError(t, err)

	txs := chain.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, txs[0].Signatures[0].String(), sig)
	assert.Equal(t, chain.Blockhash, txs[0].Message.RecentBlockhash)
	assert.Equal(t, payer.PublicKey(), txs[0].Message.AccountKeys[0], "first signer pays")
	assert.NoError(t, txs[0].VerifySignatures())
}

func TestSend_MissingSigner(t *testing.T) {
	chain := chaintest.New()
	payer := newKeypair(t)
	to := newKeypair(t)

	ix := createAccount(t, payer.PublicKey(), to.PublicKey())
	_, err := txn.Send(context.Background(), chain, []solana.Instruction{ix}, payer)
	assert.ErrorIs(t, err, txn.ErrMissingSigner)

	_, err = txn.Send(context.Background(), chain, []solana.Instruction{ix})
	assert.ErrorIs(t, err, txn.ErrMissingSigner)
	assert.Empty(t, chain.Transactions())
}

func TestSend_WipedSigner(t *testing.T) {
	chain := chaintest.New()
	payer := newKeypair(t)
	to := newKeypair(t)
	ix := createAccount(t, payer.PublicKey(), to.PublicKey())
	to.Wipe()

	_, err := txn.Send(context.Background(), chain, []solana.Instruction{ix}, payer, to)
	assert.ErrorIs(t, err, txn.ErrMissingSigner)
	assert.Empty(t, chain.Transactions())
}

func TestSend_TooLarge(t *testing.T) {
	chain := chaintest.New()
	payer := newKeypair(t)

	var ixs []solana.Instruction
	for i := 0; i < 40; i++ {
		to := newKeypair(t)
		ix, err := system.NewTransferInstruction(1, payer.PublicKey(), to.PublicKey()).ValidateAndBuild()
		require.NoError(t, err)
		ixs = append(ixs, ix)
	}
	_, err := txn.Send(context.Background(), chain, ixs, payer)
	assert.ErrorIs(t, err, txn.ErrTransactionTooLarge)
	assert.Empty(t, chain.Transactions())
}

func TestSend_Rejected(t *testing.T) {
	chain := chaintest.New()
	payer := newKeypair(t)
	to := newKeypair(t)

	ix, err := system.NewTransferInstruction(1, payer.PublicKey(), to.PublicKey()).ValidateAndBuild()
	require.NoError(t, err)
	_, err = txn.Send(context.Background(), chain, []solana.Instruction{ix}, payer)
	require.NoError(t, err)
	chain.FailAfter = 1
	_, err = txn.Send(context.Background(), chain, []solana.Instruction{ix}, payer)
	assert.ErrorIs(t, err, chaintest.ErrRejected)
}

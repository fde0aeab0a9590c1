package interfaces

import (
	"context"

	solana "github.com/gagliardetto/solana-go"
)

// ChainClient is the subset of the JSON-RPC API the services use.
type ChainClient interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	MinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error)
	// SendAndConfirm submits tx and blocks until it reaches the client's
	// commitment level or fails.
	SendAndConfirm(ctx context.Context, tx *solana.Transaction) (string, error)
	Balance(ctx context.Context, account solana.PublicKey) (uint64, error)
	RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) (string, error)
}

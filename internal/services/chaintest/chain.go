// Package chaintest provides an in-memory domain.ChainClient for service tests.
package chaintest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	solana "github.com/gagliardetto/solana-go"

	"cnft/internal/domain"
)

var _ domain.ChainClient = (*Chain)(nil)

// ErrRejected is returned by SendAndConfirm once FailAfter sends succeeded.
var ErrRejected = errors.New("transaction rejected")

// Chain records every submitted transaction and verifies its signatures.
type Chain struct {
	mu sync.Mutex

	Blockhash solana.Hash
	// RentPerByte prices rent exemption linearly.
	RentPerByte uint64
	Balances    map[solana.PublicKey]uint64
	// FailAfter makes SendAndConfirm fail after that many accepted sends
	// when it is positive.
	FailAfter int

	Sent      []*solana.Transaction
	RentSizes []uint64
}

// New returns a Chain with a fixed blockhash.
func New() *Chain {
	var h solana.Hash
	h[0] = 1
	return &Chain{Blockhash: h, RentPerByte: 10, Balances: map[solana.PublicKey]uint64{}}
}

func (c *Chain) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	return c.Blockhash, ctx.Err()
}

func (c *Chain) MinimumBalanceForRentExemption(_ context.Context, size uint64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RentSizes = append(c.RentSizes, size)
	return (size + 128) * c.RentPerByte, nil
}

func (c *Chain) SendAndConfirm(ctx context.Context, tx *solana.Transaction) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailAfter > 0 && len(c.Sent) >= c.FailAfter {
		return "", ErrRejected
	}
	if err := tx.VerifySignatures(); err != nil {
		return "", fmt.Errorf("verify: %w", err)
	}
	c.Sent = append(c.Sent, tx)
	return tx.Signatures[0].String(), nil
}

func (c *Chain) Balance(_ context.Context, account solana.PublicKey) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Balances[account], nil
}

func (c *Chain) RequestAirdrop(_ context.Context, account solana.PublicKey, lamports uint64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Balances[account] += lamports
	return "airdrop-" + account.String(), nil
}

// Transactions returns a snapshot of the accepted transactions.
func (c *Chain) Transactions() []*solana.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*solana.Transaction(nil), c.Sent...)
}

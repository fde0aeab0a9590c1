// Package txn builds, signs, and confirms transactions for the services.
package txn

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"

	solana "github.com/gagliardetto/solana-go"

	"cnft/internal/domain"
)

// MaxTransactionSize is the largest serialized transaction a node accepts.
const MaxTransactionSize = 1232

var (
	ErrMissingSigner       = errors.New("missing signer")
	ErrTransactionTooLarge = errors.New("transaction too large")
)

// Signer holds a key able to sign transactions.
type Signer interface {
	PublicKey() solana.PublicKey
	PrivateKey() *solana.PrivateKey
}

// Send fetches a recent blockhash, signs ixs with signers (the first pays the
// fee) and waits for confirmation. It returns the transaction signature.
func Send(ctx context.Context, chain domain.ChainClient, ixs []solana.Instruction, signers ...Signer) (string, error) {
	if len(signers) == 0 {
		return "", fmt.Errorf("%w: no fee payer", ErrMissingSigner)
	}
	keys := make(map[solana.PublicKey]*solana.PrivateKey, len(signers))
	for _, s := range signers {
		priv := s.PrivateKey()
		if priv == nil || len(*priv) != ed25519.PrivateKeySize {
			return "", fmt.Errorf("%w: signer key wiped", ErrMissingSigner)
		}
		keys[s.PublicKey()] = priv
	}

	blockhash, err := chain.LatestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("latest blockhash: %w", err)
	}
	tx, err := solana.NewTransaction(ixs, blockhash, solana.TransactionPayer(signers[0].PublicKey()))
	if err != nil {
		return "", fmt.Errorf("build transaction: %w", err)
	}
	for _, pk := range tx.Message.Signers() {
		if _, ok := keys[pk]; !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingSigner, pk)
		}
	}
	if _, err := tx.Sign(func(pk solana.PublicKey) *solana.PrivateKey { return keys[pk] }); err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	// Catch oversized packets before the node does.
	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("encode transaction: %w", err)
	}
	if len(raw) > MaxTransactionSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrTransactionTooLarge, len(raw), MaxTransactionSize)
	}

	id := tx.Signatures[0].String()
	sig, err := chain.SendAndConfirm(ctx, tx)
	if err != nil {
		return id, fmt.Errorf("send %s: %w", id, err)
	}
	return sig, nil
}

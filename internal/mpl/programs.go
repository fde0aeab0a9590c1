// Package mpl builds the Metaplex instructions the Solana SDK does not ship:
// Token Metadata V3 collection setup, Bubblegum tree and leaf instructions,
// and the account compression sizing rules behind them.
package mpl

import (
	solana "github.com/gagliardetto/solana-go"
)

// Program addresses not exported by the SDK.
var (
	BubblegumProgramID          = solana.MustPublicKeyFromBase58("BGUMAp9Gq7iTEuizy4pqaxsTyUCBK68MDfK752saRPUY")
	AccountCompressionProgramID = solana.MustPublicKeyFromBase58("cmtDvXumGCrqC1Age74AVPhSRVXJMd8PJS91L8KbNCK")
	NoopProgramID               = solana.MustPublicKeyFromBase58("noopb9bkMVfRPU8AsbpTUg8AQkHtKwMYZiFUjNRtMmV")
)

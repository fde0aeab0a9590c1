// Package mint appends compressed NFTs to a recorded Merkle tree, one
// recipient per transaction.
//
// Mints run sequentially behind a rate limiter. Each confirmed mint is
// written to the receipt store before the next begins, so an interrupted run
// leaves an exact record of what landed on chain.
package mint

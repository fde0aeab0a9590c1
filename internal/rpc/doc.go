// Package rpc provides a Solana JSON-RPC client implementing
// domain.ChainClient.
//
// Supported operations include:
//   - Fetching the latest blockhash and rent-exempt minimums.
//   - Submitting signed transactions and waiting for confirmation.
//   - Reading balances and requesting devnet airdrops.
//
// All requests are JSON-RPC 2.0 over HTTP POST and accept a context for
// cancellation and deadlines. Every request waits on a shared rate limiter so
// bulk minting stays under public endpoint limits. Non-2xx statuses and
// JSON-RPC error objects are returned as errors.
package rpc

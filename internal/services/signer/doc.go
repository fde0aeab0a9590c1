// Package signer manages the payer keypair that signs and funds every
// transaction.
//
// It enforces passphrase policy, generates or imports ed25519 keypairs, and
// persists them via the domain.KeystoreStore. When a Solana CLI keypair file
// is configured it is used directly instead of the keystore.
package signer

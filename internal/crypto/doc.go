// Package crypto holds the key material handling used by cnft.
//
// Contents
//
//   - Ed25519 payer keypairs (GenerateKeypair, KeypairFromSecretKey)
//   - Solana CLI keypair files, a JSON array of the 64 secret key bytes
//     (ReadKeypairFile, WriteKeypairFile)
//   - Passphrase envelopes for storing secrets at rest (Seal, Open)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// Keypair wraps a solana.PrivateKey and satisfies txn.Signer. Callers should
// Wipe a keypair once it is no longer needed to shorten the lifetime of the
// secret in memory.
package crypto

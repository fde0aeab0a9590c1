// Package store provides file-based persistence for cnft.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. Files are replaced atomically and all
// methods are concurrency-safe via internal locking. Stored files live under
// the configured home directory.
//
// The package includes stores for:
//   - The encrypted payer keypair (KeystoreFileStore)
//   - Collection NFTs (CollectionFileStore)
//   - Merkle trees (TreeFileStore)
//   - Mint receipts (MintFileStore)
package store

package interfaces

import (
	solana "github.com/gagliardetto/solana-go"

	"cnft/internal/crypto"
	domaintypes "cnft/internal/domain/types"
)

// KeystoreStore persists the payer keypair encrypted at rest.
type KeystoreStore interface {
	SaveKeypair(passphrase string, k *crypto.Keypair) error
	LoadKeypair(passphrase string) (*crypto.Keypair, error)
	Exists() (bool, error)
}

// CollectionStore persists created collections keyed by mint.
type CollectionStore interface {
	SaveCollection(rec domaintypes.CollectionRecord) error
	LoadCollection(mint solana.PublicKey) (domaintypes.CollectionRecord, bool, error)
	ListCollections() ([]domaintypes.CollectionRecord, error)
}

// TreeStore persists allocated Merkle trees keyed by address.
type TreeStore interface {
	SaveTree(rec domaintypes.TreeRecord) error
	LoadTree(address solana.PublicKey) (domaintypes.TreeRecord, bool, error)
	ListTrees() ([]domaintypes.TreeRecord, error)
}

// MintStore appends mint receipts.
type MintStore interface {
	AppendReceipt(r domaintypes.MintReceipt) error
	// ListReceipts filters by tree; the zero key returns every receipt.
	ListReceipts(tree solana.PublicKey) ([]domaintypes.MintReceipt, error)
}

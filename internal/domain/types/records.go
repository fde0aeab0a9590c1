package types

import (
	"time"

	solana "github.com/gagliardetto/solana-go"

	"cnft/internal/mpl"
)

// CollectionRecord is a collection NFT created by this tool.
type CollectionRecord struct {
	Name          string           `json:"name"`
	Symbol        string           `json:"symbol"`
	URI           string           `json:"uri"`
	Mint          solana.PublicKey `json:"mint"`
	Metadata      solana.PublicKey `json:"metadata"`
	MasterEdition solana.PublicKey `json:"master_edition"`
	TokenAccount  solana.PublicKey `json:"token_account"`
	Authority     solana.PublicKey `json:"authority"`
	Signature     string           `json:"signature"`
	CreatedAt     time.Time        `json:"created_at"`
}

// TreeRecord is a Bubblegum Merkle tree allocated by this tool.
type TreeRecord struct {
	Address       solana.PublicKey `json:"address"`
	TreeConfig    solana.PublicKey `json:"tree_config"`
	Creator       solana.PublicKey `json:"creator"`
	MaxDepth      uint32           `json:"max_depth"`
	MaxBufferSize uint32           `json:"max_buffer_size"`
	CanopyDepth   uint32           `json:"canopy_depth"`
	Public        bool             `json:"public"`
	AccountSize   uint64           `json:"account_size"`
	Lamports      uint64           `json:"lamports"`
	Signature     string           `json:"signature"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Capacity is the number of leaves the tree can hold.
func (t TreeRecord) Capacity() uint64 { return mpl.MaxLeaves(t.MaxDepth) }

// MintReceipt records one confirmed compressed NFT mint.
type MintReceipt struct {
	RunID      string           `json:"run_id"`
	Tree       solana.PublicKey `json:"tree"`
	Collection solana.PublicKey `json:"collection"`
	Owner      solana.PublicKey `json:"owner"`
	Name       string           `json:"name"`
	URI        string           `json:"uri"`
	Signature  string           `json:"signature"`
	MintedAt   time.Time        `json:"minted_at"`
}

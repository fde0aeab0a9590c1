package domain

import (
	interfaces "cnft/internal/domain/interfaces"
	types "cnft/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	CollectionRecord = types.CollectionRecord
	TreeRecord       = types.TreeRecord
	MintReceipt      = types.MintReceipt
	SignatureStatus  = types.SignatureStatus
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeystoreStore   = interfaces.KeystoreStore
	CollectionStore = interfaces.CollectionStore
	TreeStore       = interfaces.TreeStore
	MintStore       = interfaces.MintStore
	ChainClient     = interfaces.ChainClient
)

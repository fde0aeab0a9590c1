package types

// SignatureStatus is the cluster's view of a submitted transaction.
type SignatureStatus struct {
	Slot               uint64
	Confirmations      *uint64
	ConfirmationStatus string
	// Err is the transaction error as reported by the node, nil on success.
	Err any
}

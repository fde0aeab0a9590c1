// Package constants declares the fixed collection settings the minting
// commands fall back to when the config file does not override them.
package constants

import (
	solana "github.com/gagliardetto/solana-go"

	"cnft/internal/mpl"
)

const (
	MERKLE_MAX_DEPTH       = 14
	MERKLE_MAX_BUFFER_SIZE = 64
)

const (
	METADATA_COLLECTION_URL = "https://gist.githubusercontent.com/Ayushjhax/5eb6c0cb31e506d68ff0418dc704669a/raw/72b62a4f6fdb65b56f1ec47c4edd99a16a7f4979/cnft_metadata.json"
	METADATA_ITEM_URL       = "https://gist.githubusercontent.com/Ayushjhax/fd65289fa8ab637d4fa1b5f9226334c7/raw/c3d1c438b90b78a4447b545c4cc4cbd55ad3637d/cnft_item_metadata.json"
	IMAGE_URL               = "https://pbs.twimg.com/profile_images/1877817218244775936/zYaaUHgY_400x400.jpg"
)

const (
	COLLECTION_NAME        = "100xDevs Collection"
	COLLECTION_SYMBOL      = "100xDevs"
	COLLECTION_DESCRIPTION = "100xDevs Bounty Attempted by Ayush"
	FEE_PERCENT            = 0
	EXTERNAL_URL           = "https://github.com/Ayushjhax"
)

// CREATORS is read-only by convention; use Creators for a copy.
var CREATORS = []mpl.Creator{
	{
		Address:  solana.MustPublicKeyFromBase58("13mtmubKbZ3GNwnfGAhbos63bV3pZuxpEYDNEugPouCD"),
		Verified: false,
		Share:    100,
	},
}

const (
	NFT_ITEM_NAME      = "Ayush Limited Edition"
	NFT_ITEM_IMAGE_URL = IMAGE_URL
)

// Creators returns a copy of CREATORS.
func Creators() []mpl.Creator {
	return append([]mpl.Creator(nil), CREATORS...)
}

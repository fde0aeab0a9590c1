package mpl

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

// Token Metadata field limits.
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200
	MaxCreatorLimit = 5
	MaxBasisPoints  = 10_000

	editionSeed = "edition"
)

// Token Metadata instruction indices.
const (
	createMetadataAccountV3 = 33
	createMasterEditionV3   = 17
)

var (
	ErrNameTooLong      = errors.New("name too long")
	ErrSymbolTooLong    = errors.New("symbol too long")
	ErrURITooLong       = errors.New("uri too long")
	ErrTooManyCreators  = errors.New("too many creators")
	ErrDuplicateCreator = errors.New("duplicate creator address")
	ErrInvalidShares    = errors.New("creator shares must sum to 100")
	ErrInvalidFee       = errors.New("seller fee basis points out of range")
	ErrUnsignedCreator  = errors.New("verified creator is not a signer")
)

// Creator is a royalty recipient and its percentage share.
type Creator struct {
	Address  solana.PublicKey `json:"address" yaml:"address"`
	Verified bool             `json:"verified" yaml:"verified"`
	Share    uint8            `json:"share" yaml:"share"`
}

// Collection links an asset to a collection mint.
type Collection struct {
	Verified bool             `json:"verified"`
	Key      solana.PublicKey `json:"key"`
}

// DataV2 is the on-chain metadata payload for a Token Metadata account.
type DataV2 struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             []Creator
	Collection           *Collection
}

// ValidateMetadataFields checks the limits enforced by Token Metadata and
// Bubblegum. An empty creator list is allowed; otherwise addresses are unique
// and shares sum to 100.
func ValidateMetadataFields(name, symbol, uri string, feeBasisPoints uint16, creators []Creator) error {
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrNameTooLong, len(name), MaxNameLength)
	}
	if len(symbol) > MaxSymbolLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrSymbolTooLong, len(symbol), MaxSymbolLength)
	}
	if len(uri) > MaxURILength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrURITooLong, len(uri), MaxURILength)
	}
	if feeBasisPoints > MaxBasisPoints {
		return fmt.Errorf("%w: %d", ErrInvalidFee, feeBasisPoints)
	}
	if len(creators) > MaxCreatorLimit {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyCreators, len(creators), MaxCreatorLimit)
	}
	if len(creators) == 0 {
		return nil
	}
	seen := make(map[solana.PublicKey]struct{}, len(creators))
	total := 0
	for _, c := range creators {
		if _, dup := seen[c.Address]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateCreator, c.Address)
		}
		seen[c.Address] = struct{}{}
		total += int(c.Share)
	}
	if total != 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidShares, total)
	}
	return nil
}

// CheckVerifiedCreators requires every creator flagged verified to be one of
// signers, since the program rejects unsigned verifications.
func CheckVerifiedCreators(creators []Creator, signers ...solana.PublicKey) error {
	signed := solana.PublicKeySlice(signers)
	for _, c := range creators {
		if c.Verified && !signed.Contains(c.Address) {
			return fmt.Errorf("%w: %s", ErrUnsignedCreator, c.Address)
		}
	}
	return nil
}

// MetadataAddress derives the metadata account of mint.
func MetadataAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	pk, _, err := solana.FindTokenMetadataAddress(mint)
	return pk, err
}

// MasterEditionAddress derives the master edition account of mint.
func MasterEditionAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	pk, _, err := solana.FindProgramAddress(
		[][]byte{
			[]byte("metadata"),
			solana.TokenMetadataProgramID[:],
			mint[:],
			[]byte(editionSeed),
		},
		solana.TokenMetadataProgramID,
	)
	return pk, err
}

// CreateMetadataAccountV3Accounts lists the accounts of CreateMetadataAccountV3.
type CreateMetadataAccountV3Accounts struct {
	Metadata        solana.PublicKey
	Mint            solana.PublicKey
	MintAuthority   solana.PublicKey
	Payer           solana.PublicKey
	UpdateAuthority solana.PublicKey
}

// CreateMetadataAccountV3 creates the metadata account for a mint. When
// sized is true the asset is marked as a sized collection parent (size 0).
func CreateMetadataAccountV3(accts CreateMetadataAccountV3Accounts, data DataV2, isMutable, sized bool) (solana.Instruction, error) {
	raw, err := instructionData([]byte{createMetadataAccountV3}, func(enc *bin.Encoder) error {
		for _, s := range []string{data.Name, data.Symbol, data.URI} {
			if err := enc.WriteString(s); err != nil {
				return err
			}
		}
		if err := enc.WriteUint16(data.SellerFeeBasisPoints, bin.LE); err != nil {
			return err
		}
		err := writeOption(enc, len(data.Creators) > 0, func() error {
			return writeCreators(enc, data.Creators)
		})
		if err != nil {
			return err
		}
		if err := writeCollection(enc, data.Collection); err != nil {
			return err
		}
		// uses
		if err := enc.WriteOption(false); err != nil {
			return err
		}
		if err := enc.WriteBool(isMutable); err != nil {
			return err
		}
		// CollectionDetails::V1 { size: 0 }
		return writeOption(enc, sized, func() error {
			if err := enc.WriteUint8(0); err != nil {
				return err
			}
			return enc.WriteUint64(0, bin.LE)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("encode create metadata: %w", err)
	}

	return solana.NewInstruction(
		solana.TokenMetadataProgramID,
		solana.AccountMetaSlice{
			solana.Meta(accts.Metadata).WRITE(),
			solana.Meta(accts.Mint),
			solana.Meta(accts.MintAuthority).SIGNER(),
			solana.Meta(accts.Payer).SIGNER().WRITE(),
			solana.Meta(accts.UpdateAuthority).SIGNER(),
			solana.Meta(solana.SystemProgramID),
			solana.Meta(solana.SysVarRentPubkey),
		},
		raw,
	), nil
}

// CreateMasterEditionV3Accounts lists the accounts of CreateMasterEditionV3.
type CreateMasterEditionV3Accounts struct {
	Edition         solana.PublicKey
	Mint            solana.PublicKey
	UpdateAuthority solana.PublicKey
	MintAuthority   solana.PublicKey
	Payer           solana.PublicKey
	Metadata        solana.PublicKey
}

// CreateMasterEditionV3 turns the mint into a master edition. A nil maxSupply
// allows unlimited prints.
func CreateMasterEditionV3(accts CreateMasterEditionV3Accounts, maxSupply *uint64) (solana.Instruction, error) {
	raw, err := instructionData([]byte{createMasterEditionV3}, func(enc *bin.Encoder) error {
		return writeOption(enc, maxSupply != nil, func() error {
			return enc.WriteUint64(*maxSupply, bin.LE)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("encode create master edition: %w", err)
	}

	return solana.NewInstruction(
		solana.TokenMetadataProgramID,
		solana.AccountMetaSlice{
			solana.Meta(accts.Edition).WRITE(),
			solana.Meta(accts.Mint).WRITE(),
			solana.Meta(accts.UpdateAuthority).SIGNER(),
			solana.Meta(accts.MintAuthority).SIGNER(),
			solana.Meta(accts.Payer).SIGNER().WRITE(),
			solana.Meta(accts.Metadata).WRITE(),
			solana.Meta(solana.TokenProgramID),
			solana.Meta(solana.SystemProgramID),
			solana.Meta(solana.SysVarRentPubkey),
		},
		raw,
	), nil
}

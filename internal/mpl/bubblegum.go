package mpl

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

const collectionCPISeed = "collection_cpi"

// Anchor selectors of the Bubblegum instructions in use.
var (
	createTreeDiscriminator         = bin.Sighash(bin.SIGHASH_GLOBAL_NAMESPACE, "create_tree")
	mintV1Discriminator             = bin.Sighash(bin.SIGHASH_GLOBAL_NAMESPACE, "mint_v1")
	mintToCollectionV1Discriminator = bin.Sighash(bin.SIGHASH_GLOBAL_NAMESPACE, "mint_to_collection_v1")
)

// TokenStandard mirrors the Token Metadata enum; only NonFungible is used for
// compressed assets.
type TokenStandard uint8

const (
	TokenStandardNonFungible TokenStandard = 0
)

// MetadataArgs is the leaf metadata Bubblegum hashes into the tree.
type MetadataArgs struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	PrimarySaleHappened  bool
	IsMutable            bool
	EditionNonce         *uint8
	TokenStandard        *TokenStandard
	Collection           *Collection
	Creators             []Creator
}

// MarshalWithEncoder writes the borsh layout of MetadataArgs.
func (m MetadataArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	for _, s := range []string{m.Name, m.Symbol, m.URI} {
		if err := enc.WriteString(s); err != nil {
			return err
		}
	}
	if err := enc.WriteUint16(m.SellerFeeBasisPoints, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteBool(m.PrimarySaleHappened); err != nil {
		return err
	}
	if err := enc.WriteBool(m.IsMutable); err != nil {
		return err
	}
	err := writeOption(enc, m.EditionNonce != nil, func() error {
		return enc.WriteUint8(*m.EditionNonce)
	})
	if err != nil {
		return err
	}
	err = writeOption(enc, m.TokenStandard != nil, func() error {
		return enc.WriteUint8(uint8(*m.TokenStandard))
	})
	if err != nil {
		return err
	}
	if err := writeCollection(enc, m.Collection); err != nil {
		return err
	}
	// uses
	if err := enc.WriteOption(false); err != nil {
		return err
	}
	// TokenProgramVersion::Original
	if err := enc.WriteUint8(0); err != nil {
		return err
	}
	return writeCreators(enc, m.Creators)
}

// TreeConfigAddress derives the Bubblegum tree config (tree authority) PDA.
func TreeConfigAddress(merkleTree solana.PublicKey) (solana.PublicKey, error) {
	pk, _, err := solana.FindProgramAddress([][]byte{merkleTree[:]}, BubblegumProgramID)
	return pk, err
}

// BubblegumSignerAddress derives the PDA Bubblegum signs collection CPIs with.
func BubblegumSignerAddress() (solana.PublicKey, error) {
	pk, _, err := solana.FindProgramAddress([][]byte{[]byte(collectionCPISeed)}, BubblegumProgramID)
	return pk, err
}

// CreateTreeConfigAccounts lists the accounts of create_tree.
type CreateTreeConfigAccounts struct {
	TreeConfig  solana.PublicKey
	MerkleTree  solana.PublicKey
	Payer       solana.PublicKey
	TreeCreator solana.PublicKey
}

// CreateTreeConfig initialises a pre-allocated Merkle tree account and its
// Bubblegum config. A nil public leaves the tree private to its creator.
func CreateTreeConfig(accts CreateTreeConfigAccounts, maxDepth, maxBufferSize uint32, public *bool) (solana.Instruction, error) {
	raw, err := instructionData(createTreeDiscriminator, func(enc *bin.Encoder) error {
		if err := enc.WriteUint32(maxDepth, bin.LE); err != nil {
			return err
		}
		if err := enc.WriteUint32(maxBufferSize, bin.LE); err != nil {
			return err
		}
		return writeOption(enc, public != nil, func() error {
			return enc.WriteBool(*public)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("encode create tree: %w", err)
	}

	return solana.NewInstruction(
		BubblegumProgramID,
		solana.AccountMetaSlice{
			solana.Meta(accts.TreeConfig).WRITE(),
			solana.Meta(accts.MerkleTree).WRITE(),
			solana.Meta(accts.Payer).SIGNER().WRITE(),
			solana.Meta(accts.TreeCreator).SIGNER(),
			solana.Meta(NoopProgramID),
			solana.Meta(AccountCompressionProgramID),
			solana.Meta(solana.SystemProgramID),
		},
		raw,
	), nil
}

// MintV1Accounts lists the accounts of mint_v1.
type MintV1Accounts struct {
	TreeConfig            solana.PublicKey
	LeafOwner             solana.PublicKey
	LeafDelegate          solana.PublicKey
	MerkleTree            solana.PublicKey
	Payer                 solana.PublicKey
	TreeCreatorOrDelegate solana.PublicKey
}

func leafData(discriminator []byte, metadata MetadataArgs) ([]byte, error) {
	return instructionData(discriminator, metadata.MarshalWithEncoder)
}

// MintV1 appends a compressed NFT without a verified collection.
func MintV1(accts MintV1Accounts, metadata MetadataArgs) (solana.Instruction, error) {
	raw, err := leafData(mintV1Discriminator, metadata)
	if err != nil {
		return nil, fmt.Errorf("encode mint_v1: %w", err)
	}

	return solana.NewInstruction(
		BubblegumProgramID,
		solana.AccountMetaSlice{
			solana.Meta(accts.TreeConfig).WRITE(),
			solana.Meta(accts.LeafOwner),
			solana.Meta(accts.LeafDelegate),
			solana.Meta(accts.MerkleTree).WRITE(),
			solana.Meta(accts.Payer).SIGNER().WRITE(),
			solana.Meta(accts.TreeCreatorOrDelegate).SIGNER(),
			solana.Meta(NoopProgramID),
			solana.Meta(AccountCompressionProgramID),
			solana.Meta(solana.SystemProgramID),
		},
		raw,
	), nil
}

// MintToCollectionV1Accounts lists the accounts of mint_to_collection_v1.
type MintToCollectionV1Accounts struct {
	MintV1Accounts
	CollectionAuthority solana.PublicKey
	CollectionMint      solana.PublicKey
	CollectionMetadata  solana.PublicKey
	CollectionEdition   solana.PublicKey
	BubblegumSigner     solana.PublicKey
}

// MintToCollectionV1 appends a compressed NFT and verifies it as a member of
// the collection in the same instruction.
func MintToCollectionV1(accts MintToCollectionV1Accounts, metadata MetadataArgs) (solana.Instruction, error) {
	raw, err := leafData(mintToCollectionV1Discriminator, metadata)
	if err != nil {
		return nil, fmt.Errorf("encode mint_to_collection_v1: %w", err)
	}

	return solana.NewInstruction(
		BubblegumProgramID,
		solana.AccountMetaSlice{
			solana.Meta(accts.TreeConfig).WRITE(),
			solana.Meta(accts.LeafOwner),
			solana.Meta(accts.LeafDelegate),
			solana.Meta(accts.MerkleTree).WRITE(),
			solana.Meta(accts.Payer).SIGNER().WRITE(),
			solana.Meta(accts.TreeCreatorOrDelegate).SIGNER(),
			solana.Meta(accts.CollectionAuthority).SIGNER(),
			// No collection authority record: the program id stands in for None.
			solana.Meta(BubblegumProgramID),
			solana.Meta(accts.CollectionMint),
			solana.Meta(accts.CollectionMetadata).WRITE(),
			solana.Meta(accts.CollectionEdition),
			solana.Meta(accts.BubblegumSigner),
			solana.Meta(NoopProgramID),
			solana.Meta(AccountCompressionProgramID),
			solana.Meta(solana.TokenMetadataProgramID),
			solana.Meta(solana.SystemProgramID),
		},
		raw,
	), nil
}

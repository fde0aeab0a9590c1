package mpl_test

import (
	"strings"
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnft/internal/mpl"
)

func TestValidateMetadataFields(t *testing.T) {
	other := mpl.BubblegumProgramID
	full := []mpl.Creator{{Address: testKey, Share: 100}}

	tests := []struct {
		name     string
		title    string
		symbol   string
		uri      string
		fee      uint16
		creators []mpl.Creator
		wantErr  error
	}{
		{"ok", "Name", "SYM", "https://x", 0, full, nil},
		{"no creators", "Name", "SYM", "https://x", 0, nil, nil},
		{"split", "Name", "SYM", "", 500, []mpl.Creator{{Address: testKey, Share: 40}, {Address: other, Share: 60}}, nil},
		{"long name", strings.Repeat("n", 33), "SYM", "", 0, full, mpl.ErrNameTooLong},
		{"long symbol", "Name", strings.Repeat("s", 11), "", 0, full, mpl.ErrSymbolTooLong},
		{"long uri", "Name", "SYM", strings.Repeat("u", 201), 0, full, mpl.ErrURITooLong},
		{"fee", "Name", "SYM", "", 10001, full, mpl.ErrInvalidFee},
		{"shares", "Name", "SYM", "", 0, []mpl.Creator{{Address: testKey, Share: 60}}, mpl.ErrInvalidShares},
		{"too many", "Name", "SYM", "", 0, make([]mpl.Creator, 6), mpl.ErrTooManyCreators},
		{"duplicate", "Name", "SYM", "", 0, []mpl.Creator{{Address: testKey, Share: 50}, {Address: testKey, Share: 50}}, mpl.ErrDuplicateCreator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mpl.ValidateMetadataFields(tt.title, tt.symbol, tt.uri, tt.fee, tt.creators)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateMetadataAccountV3_Data(t *testing.T) {
	md, err := mpl.MetadataAddress(testKey)
	require.NoError(t, err)

	ix, err := mpl.CreateMetadataAccountV3(mpl.CreateMetadataAccountV3Accounts{
		Metadata:        md,
		Mint:            testKey,
		MintAuthority:   testKey,
		Payer:           testKey,
		UpdateAuthority: testKey,
	}, mpl.DataV2{Name: "A", Symbol: "B", URI: "C"}, true, true)
	require.NoError(t, err)

	assert.Equal(t, solana.TokenMetadataProgramID, ix.ProgramID())
	want := []byte{
		33,
		1, 0, 0, 0, 'A',
		1, 0, 0, 0, 'B',
		1, 0, 0, 0, 'C',
		0, 0, // fee
		0,    // creators
		0,    // collection
		0,    // uses
		1,    // mutable
		1, 0, // collection details V1
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, want, data)
	require.Len(t, ix.Accounts(), 7)
	assert.True(t, ix.Accounts()[0].IsWritable)
	assert.True(t, ix.Accounts()[3].IsSigner)
}

func TestCreateMetadataAccountV3_Creators(t *testing.T) {
	ix, err := mpl.CreateMetadataAccountV3(mpl.CreateMetadataAccountV3Accounts{},
		mpl.DataV2{Creators: []mpl.Creator{{Address: testKey, Verified: true, Share: 100}}}, false, false)
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	// index, three empty strings, fee, then Some(vec![creator]).
	head := 1 + 3*4 + 2
	require.Greater(t, len(data), head+5+32+2)
	assert.Equal(t, []byte{1, 1, 0, 0, 0}, data[head:head+5])
	assert.Equal(t, testKey[:], data[head+5:head+5+32])
	assert.Equal(t, []byte{1, 100}, data[head+37:head+39])
}

func TestCreateMasterEditionV3_MaxSupply(t *testing.T) {
	zero := uint64(0)
	ix, err := mpl.CreateMasterEditionV3(mpl.CreateMasterEditionV3Accounts{}, &zero)
	require.NoError(t, err)
	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{17, 1, 0, 0, 0, 0, 0, 0, 0, 0}, data)

	ix, err = mpl.CreateMasterEditionV3(mpl.CreateMasterEditionV3Accounts{}, nil)
	require.NoError(t, err)
	data, err = ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{17, 0}, data)
	assert.Len(t, ix.Accounts(), 9)
}

func TestCheckVerifiedCreators(t *testing.T) {
	other := mpl.BubblegumProgramID

	assert.NoError(t, mpl.CheckVerifiedCreators([]mpl.Creator{{Address: testKey, Share: 100}}))
	assert.NoError(t, mpl.CheckVerifiedCreators([]mpl.Creator{{Address: testKey, Verified: true, Share: 100}}, testKey))
	err := mpl.CheckVerifiedCreators([]mpl.Creator{{Address: testKey, Verified: true, Share: 100}}, other)
	assert.ErrorIs(t, err, mpl.ErrUnsignedCreator)
}

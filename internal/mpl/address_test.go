package mpl_test

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnft/internal/mpl"
)

var testKey = solana.MustPublicKeyFromBase58("13mtmubKbZ3GNwnfGAhbos63bV3pZuxpEYDNEugPouCD")

func TestDerivedAddresses_KnownVectors(t *testing.T) {
	signer, err := mpl.BubblegumSignerAddress()
	require.NoError(t, err)
	assert.Equal(t, "4ewWZC5gT6TGpm5LZNDs9wVonfUT2q5PP5sc9kVbwMAK", signer.String())

	tests := []struct {
		name string
		fn   func(solana.PublicKey) (solana.PublicKey, error)
		want string
	}{
		{"metadata", mpl.MetadataAddress, "BqaiwBdqc1P9Vs6AKcC3kbM2iShCCeZVSeZnqKEPW5MY"},
		{"edition", mpl.MasterEditionAddress, "EubfDjwLX4KYdBgwxpYk5nTRKDF5qjvUYo8TdJsUxQWs"},
		{"tree config", mpl.TreeConfigAddress, "6BvMd1t7FBdTFCv4tARdfwKy2TPk8HLfJkfJ5ZYqNJdK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(testKey)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.False(t, got.IsOnCurve())
		})
	}

	usdc := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	ata, _, err := solana.FindAssociatedTokenAddress(testKey, usdc)
	require.NoError(t, err)
	assert.Equal(t, "3vLjhmsCfFzbkS6pMp2mzmY3TdnHFDXrK3zjEMwaZQ4a", ata.String())
}

func TestDerivedAddresses_Distinct(t *testing.T) {
	md, err := mpl.MetadataAddress(testKey)
	require.NoError(t, err)
	ed, err := mpl.MasterEditionAddress(testKey)
	require.NoError(t, err)
	tc, err := mpl.TreeConfigAddress(testKey)
	require.NoError(t, err)

	seen := map[solana.PublicKey]bool{}
	for _, pk := range []solana.PublicKey{md, ed, tc} {
		assert.False(t, seen[pk])
		seen[pk] = true
	}
}

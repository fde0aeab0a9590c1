package mpl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cnft/internal/mpl"
)

func TestMerkleTreeAccountSize(t *testing.T) {
	tests := []struct {
		depth, buffer, canopy uint32
		want                  uint64
	}{
		{14, 64, 0, 31800},
		{14, 64, 10, 31800 + 2046*32},
		{3, 8, 0, 56 + 24 + 8*(32+96+8) + (96 + 40)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mpl.MerkleTreeAccountSize(tt.depth, tt.buffer, tt.canopy),
			"depth=%d buffer=%d canopy=%d", tt.depth, tt.buffer, tt.canopy)
	}
}

func TestValidateTreeShape(t *testing.T) {
	tests := []struct {
		name                  string
		depth, buffer, canopy uint32
		wantErr               bool
	}{
		{"smallest", 3, 8, 0, false},
		{"default", 14, 64, 0, false},
		{"canopy", 20, 1024, 10, false},
		{"depth 6", 6, 16, 0, false},
		{"depth 9", 9, 16, 3, false},
		{"depth 10", 10, 32, 0, false},
		{"depth 13", 13, 32, 5, false},
		{"largest that fits", 30, 2048, 17, false},
		{"unknown buffer", 14, 63, 0, true},
		{"depth 10 wrong buffer", 10, 16, 0, true},
		{"canopy too deep", 14, 64, 14, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mpl.ValidateTreeShape(tt.depth, tt.buffer, tt.canopy)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateTreeShape_AccountSizeCap(t *testing.T) {
	err := mpl.ValidateTreeShape(30, 1024, 29)
	assert.ErrorIs(t, err, mpl.ErrTreeTooLarge)

	err = mpl.ValidateTreeShape(30, 2048, 18)
	assert.ErrorIs(t, err, mpl.ErrTreeTooLarge)
	assert.LessOrEqual(t, mpl.MerkleTreeAccountSize(30, 2048, 17), uint64(mpl.MaxAccountSize))
}

func TestValidDepthSizePairs_Copy(t *testing.T) {
	pairs := mpl.ValidDepthSizePairs()
	pairs[0].MaxDepth = 99
	assert.NotEqual(t, uint32(99), mpl.ValidDepthSizePairs()[0].MaxDepth)
}

func TestMaxLeaves(t *testing.T) {
	assert.Equal(t, uint64(16384), mpl.MaxLeaves(14))
}

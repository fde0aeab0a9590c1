package mpl

import (
	"errors"
	"fmt"
)

const (
	// concurrentMerkleTreeHeaderSize is the account type byte, the header
	// version byte and the V1 header body.
	concurrentMerkleTreeHeaderSize = 2 + 54
	nodeSize                       = 32

	// MaxAccountSize is the largest account the runtime lets a program
	// allocate.
	MaxAccountSize = 10 * 1024 * 1024
)

var ErrTreeTooLarge = errors.New("merkle tree account too large")

// DepthSizePair is a supported (max depth, max buffer size) combination.
type DepthSizePair struct {
	MaxDepth      uint32
	MaxBufferSize uint32
}

// validDepthSizePairs are the tree shapes the account compression program
// accepts.
var validDepthSizePairs = []DepthSizePair{
	{3, 8}, {5, 8},
	{6, 16}, {7, 16}, {8, 16}, {9, 16},
	{10, 32}, {11, 32}, {12, 32}, {13, 32},
	{14, 64}, {14, 256}, {14, 1024}, {14, 2048},
	{15, 64}, {16, 64}, {17, 64}, {18, 64}, {19, 64},
	{20, 64}, {20, 256}, {20, 1024}, {20, 2048},
	{24, 64}, {24, 256}, {24, 512}, {24, 1024}, {24, 2048},
	{26, 512}, {26, 1024}, {26, 2048},
	{30, 512}, {30, 1024}, {30, 2048},
}

// ValidDepthSizePairs returns a copy of the accepted tree shapes.
func ValidDepthSizePairs() []DepthSizePair {
	return append([]DepthSizePair(nil), validDepthSizePairs...)
}

// ValidateTreeShape rejects unsupported depth/buffer pairs, canopies that are
// not shallower than the tree, and shapes whose account would exceed
// MaxAccountSize.
func ValidateTreeShape(maxDepth, maxBufferSize, canopyDepth uint32) error {
	found := false
	for _, p := range validDepthSizePairs {
		if p.MaxDepth == maxDepth && p.MaxBufferSize == maxBufferSize {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unsupported merkle tree shape: depth %d, buffer %d", maxDepth, maxBufferSize)
	}
	if canopyDepth >= maxDepth {
		return fmt.Errorf("canopy depth %d must be less than max depth %d", canopyDepth, maxDepth)
	}
	if size := MerkleTreeAccountSize(maxDepth, maxBufferSize, canopyDepth); size > MaxAccountSize {
		return fmt.Errorf("%w: %d bytes (max %d); lower the canopy depth", ErrTreeTooLarge, size, MaxAccountSize)
	}
	return nil
}

// MerkleTreeAccountSize returns the byte size of a concurrent Merkle tree
// account with the given shape.
func MerkleTreeAccountSize(maxDepth, maxBufferSize, canopyDepth uint32) uint64 {
	depth := uint64(maxDepth)
	// ChangeLog: root, path nodes, index (u32), padding (u32).
	changeLog := nodeSize + nodeSize*depth + 8
	// Rightmost path: proof nodes, leaf, index (u32), padding (u32).
	rightmostPath := nodeSize*depth + nodeSize + 8
	// sequence number, active index, buffer size (u64 each).
	tree := 24 + uint64(maxBufferSize)*changeLog + rightmostPath

	var canopy uint64
	if canopyDepth > 0 {
		canopy = ((uint64(1) << (canopyDepth + 1)) - 2) * nodeSize
	}
	return concurrentMerkleTreeHeaderSize + tree + canopy
}

// MaxLeaves is the capacity of a tree of the given depth.
func MaxLeaves(maxDepth uint32) uint64 {
	return uint64(1) << maxDepth
}

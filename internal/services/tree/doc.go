// Package tree allocates concurrent Merkle tree accounts and registers them
// with Bubblegum.
package tree

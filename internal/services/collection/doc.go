// Package collection mints the verified-collection parent NFT that compressed
// NFTs are grouped under.
package collection

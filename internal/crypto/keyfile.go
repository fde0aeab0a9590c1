package crypto

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// ReadKeypairFile loads a keypair in the Solana CLI format: a JSON array of
// the 64 secret key bytes.
func ReadKeypairFile(path string) (*Keypair, error) {
	// #nosec G304 -- keypair paths are provided by the operator
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defer Wipe(b)
	return ParseKeypairJSON(b)
}

// ParseKeypairJSON decodes the Solana CLI keypair format.
func ParseKeypairJSON(b []byte) (*Keypair, error) {
	var ints []int
	if err := json.Unmarshal(b, &ints); err != nil {
		return nil, fmt.Errorf("parse keypair: %w", err)
	}
	secret := make([]byte, len(ints))
	defer Wipe(secret)
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("parse keypair: byte %d out of range: %d", i, v)
		}
		secret[i] = byte(v)
	}
	return KeypairFromSecretKey(secret)
}

// MarshalKeypairJSON encodes k in the Solana CLI format.
func MarshalKeypairJSON(k *Keypair) ([]byte, error) {
	secret := k.SecretKey()
	defer Wipe(secret)
	ints := make([]int, len(secret))
	for i, v := range secret {
		ints[i] = int(v)
	}
	return json.Marshal(ints)
}

// WriteKeypairFile writes k to path in the Solana CLI format with mode 0600.
func WriteKeypairFile(path string, k *Keypair) error {
	b, err := MarshalKeypairJSON(k)
	if err != nil {
		return err
	}
	defer Wipe(b)
	return renameio.WriteFile(path, b, 0o600)
}

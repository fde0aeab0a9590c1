package crypto

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// envelopeVersion is the current on-disk format version.
	envelopeVersion = 1

	KDFScrypt   = "scrypt"
	KDFArgon2id = "argon2id"

	saltBytes = 16
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// ciphertext has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted keystore")
)

// KDFParams selects the key derivation function and its cost.
type KDFParams struct {
	Name string `json:"name"`
	// scrypt
	N int `json:"n,omitempty"`
	R int `json:"r,omitempty"`
	P int `json:"p,omitempty"`
	// argon2id
	Time    uint32 `json:"time,omitempty"`
	Memory  uint32 `json:"memory,omitempty"`
	Threads uint8  `json:"threads,omitempty"`
}

// DefaultKDF is scrypt with interactive-login cost.
func DefaultKDF() KDFParams { return KDFParams{Name: KDFScrypt, N: 1 << 15, R: 8, P: 1} }

// Argon2idKDF is the memory-hard alternative.
func Argon2idKDF() KDFParams {
	return KDFParams{Name: KDFArgon2id, Time: 1, Memory: 64 * 1024, Threads: 4}
}

// envelope is the JSON structure written to disk.
type envelope struct {
	V      int       `json:"v"`
	KDF    KDFParams `json:"kdf"`
	Salt   []byte    `json:"salt"`
	Nonce  []byte    `json:"nonce"`
	Cipher []byte    `json:"cipher"`
}

func deriveKey(passphrase string, salt []byte, p KDFParams) ([]byte, error) {
	switch p.Name {
	case KDFScrypt:
		return scrypt.Key([]byte(passphrase), salt, p.N, p.R, p.P, chacha20poly1305.KeySize)
	case KDFArgon2id:
		if p.Time == 0 || p.Memory == 0 || p.Threads == 0 {
			return nil, fmt.Errorf("invalid argon2id parameters")
		}
		return argon2.IDKey([]byte(passphrase), salt, p.Time, p.Memory, p.Threads, chacha20poly1305.KeySize), nil
	default:
		return nil, fmt.Errorf("unsupported kdf %q", p.Name)
	}
}

// Seal encrypts plaintext under a key derived from passphrase and returns the
// JSON envelope. The salt is authenticated as associated data.
func Seal(passphrase string, plaintext []byte, params KDFParams) ([]byte, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := deriveKey(passphrase, salt, params)
	if err != nil {
		return nil, err
	}
	defer Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return json.Marshal(envelope{
		V:      envelopeVersion,
		KDF:    params,
		Salt:   salt,
		Nonce:  nonce,
		Cipher: aead.Seal(nil, nonce, plaintext, salt),
	})
}

// Open decrypts an envelope produced by Seal.
func Open(passphrase string, blob []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, fmt.Errorf("decode keystore: %w", err)
	}
	if env.V > envelopeVersion {
		return nil, fmt.Errorf("unsupported keystore version %d", env.V)
	}
	if len(env.Salt) != saltBytes || len(env.Nonce) != chacha20poly1305.NonceSize {
		return nil, ErrWrongPassphrase
	}
	key, err := deriveKey(passphrase, env.Salt, env.KDF)
	if err != nil {
		return nil, err
	}
	defer Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, env.Nonce, env.Cipher, env.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

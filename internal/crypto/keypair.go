package crypto

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"runtime"

	solana "github.com/gagliardetto/solana-go"
)

// SecretKeyLength is the length of a Solana secret key: the ed25519 seed
// followed by the public key.
const SecretKeyLength = ed25519.PrivateKeySize

var (
	ErrInvalidSecretKeyLength = errors.New("invalid secret key length")
	ErrInvalidSecretKey       = errors.New("invalid secret key")
)

// Keypair is an ed25519 signing key for a Solana account.
type Keypair struct {
	priv solana.PrivateKey
}

// GenerateKeypair returns a fresh random keypair.
func GenerateKeypair() (*Keypair, error) {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, err
	}
	return &Keypair{priv: priv}, nil
}

// KeypairFromSecretKey builds a keypair from 64 secret key bytes. The trailing
// 32 bytes must be the public key of the leading seed.
func KeypairFromSecretKey(secret []byte) (*Keypair, error) {
	if len(secret) != SecretKeyLength {
		return nil, ErrInvalidSecretKeyLength
	}
	priv := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	if !bytes.Equal(priv[ed25519.SeedSize:], secret[ed25519.SeedSize:]) {
		Wipe(priv)
		return nil, ErrInvalidSecretKey
	}
	return &Keypair{priv: solana.PrivateKey(priv)}, nil
}

// PublicKey returns the account address, or the zero key once wiped.
func (k *Keypair) PublicKey() solana.PublicKey {
	if len(k.priv) != SecretKeyLength {
		return solana.PublicKey{}
	}
	return solana.PublicKeyFromBytes(k.priv[ed25519.SeedSize:])
}

// PrivateKey exposes the key to solana.Transaction signing.
func (k *Keypair) PrivateKey() *solana.PrivateKey {
	return &k.priv
}

// Sign signs message with the secret key.
func (k *Keypair) Sign(message []byte) (solana.Signature, error) {
	if len(k.priv) != SecretKeyLength {
		return solana.Signature{}, ErrInvalidSecretKey
	}
	return k.priv.Sign(message)
}

// SecretKey returns a copy of the 64 secret key bytes.
func (k *Keypair) SecretKey() []byte {
	return append([]byte(nil), k.priv...)
}

// Wipe clears the secret key. The keypair is unusable afterwards.
func (k *Keypair) Wipe() {
	Wipe(k.priv)
	k.priv = nil
}

// Wipe zeroes b. This is best-effort and aims to keep the compiler from
// eliding the writes.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}

package signer_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnft/internal/crypto"
	"cnft/internal/services/signer"
	"cnft/internal/store"
)

const strong = "Tr0ub4dor&3-horse"

func newService(t *testing.T, keypairPath string) *signer.Service {
	t.Helper()
	ks := store.NewKeystoreFileStore(t.TempDir(), crypto.KDFParams{Name: crypto.KDFScrypt, N: 1 << 10, R: 8, P: 1})
	return signer.New(ks, keypairPath)
}

func TestGenerate_WeakPassphrase(t *testing.T) {
	svc := newService(t, "")
	for _, p := range []string{"", "short1!A", "alllowercase123!", "NoDigitsHere!!", "NoSymbols12345"} {
		_, err := svc.Generate(p, false)
		assert.ErrorIs(t, err, signer.ErrWeakPassphrase, "passphrase %q", p)
	}
}

func TestGenerate_ThenLoad(t *testing.T) {
	svc := newService(t, "")
	k, err := svc.Generate(strong, false)
	require.NoError(t, err)

	got, err := svc.Load(strong)
	require.NoError(t, err)
	assert.Equal(t, k.PublicKey(), got.PublicKey())

	_, err = svc.Generate(strong, false)
	assert.ErrorIs(t, err, signer.ErrKeystoreExists)

	replaced, err := svc.Generate(strong, true)
	require.NoError(t, err)
	assert.NotEqual(t, k.PublicKey(), replaced.PublicKey())
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	k, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	src := filepath.Join(dir, "id.json")
	require.NoError(t, crypto.WriteKeypairFile(src, k))

	svc := newService(t, "")
	imported, err := svc.Import(strong, src, false)
	require.NoError(t, err)
	assert.Equal(t, k.PublicKey(), imported.PublicKey())

	dst := filepath.Join(dir, "out.json")
	require.NoError(t, svc.Export(strong, dst))
	exported, err := crypto.ReadKeypairFile(dst)
	require.NoError(t, err)
	assert.Equal(t, k.PublicKey(), exported.PublicKey())
}

func TestLoad_FromKeypairPath(t *testing.T) {
	k, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, crypto.WriteKeypairFile(path, k))

	got, err := newService(t, path).Load("")
	require.NoError(t, err)
	assert.Equal(t, k.PublicKey(), got.PublicKey())
}

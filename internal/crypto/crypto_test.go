package crypto_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnft/internal/crypto"
)

// fastKDF keeps tests quick; production uses DefaultKDF.
func fastKDF() crypto.KDFParams {
	return crypto.KDFParams{Name: crypto.KDFScrypt, N: 1 << 10, R: 8, P: 1}
}

func TestKeypair_FromSecretKey(t *testing.T) {
	k, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	again, err := crypto.KeypairFromSecretKey(k.SecretKey())
	require.NoError(t, err)
	assert.Equal(t, k.PublicKey(), again.PublicKey())

	_, err = crypto.KeypairFromSecretKey(make([]byte, 63))
	assert.ErrorIs(t, err, crypto.ErrInvalidSecretKeyLength)

	bad := k.SecretKey()
	bad[63] ^= 0xff
	_, err = crypto.KeypairFromSecretKey(bad)
	assert.ErrorIs(t, err, crypto.ErrInvalidSecretKey)
}

func TestKeypair_Wipe(t *testing.T) {
	k, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	k.Wipe()
	_, err = k.Sign([]byte("msg"))
	assert.ErrorIs(t, err, crypto.ErrInvalidSecretKey)
}

func TestKeypairFile_RoundTrip(t *testing.T) {
	k, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, crypto.WriteKeypairFile(path, k))

	got, err := crypto.ReadKeypairFile(path)
	require.NoError(t, err)
	assert.Equal(t, k.PublicKey(), got.PublicKey())
}

func TestParseKeypairJSON_Errors(t *testing.T) {
	_, err := crypto.ParseKeypairJSON([]byte(`{"not":"an array"}`))
	assert.Error(t, err)

	_, err = crypto.ParseKeypairJSON([]byte(`[1,2,3]`))
	assert.ErrorIs(t, err, crypto.ErrInvalidSecretKeyLength)

	ints := make([]int, 64)
	ints[5] = 256
	b, _ := json.Marshal(ints)
	_, err = crypto.ParseKeypairJSON(b)
	assert.Error(t, err)
}

func TestEnvelope_SealOpen(t *testing.T) {
	for _, params := range []crypto.KDFParams{
		fastKDF(),
		{Name: crypto.KDFArgon2id, Time: 1, Memory: 1024, Threads: 1},
	} {
		t.Run(params.Name, func(t *testing.T) {
			blob, err := crypto.Seal("Correct-Horse-9", []byte("secret"), params)
			require.NoError(t, err)

			pt, err := crypto.Open("Correct-Horse-9", blob)
			require.NoError(t, err)
			assert.Equal(t, []byte("secret"), pt)

			_, err = crypto.Open("wrong", blob)
			assert.ErrorIs(t, err, crypto.ErrWrongPassphrase)
		})
	}
}

func TestEnvelope_UnsupportedKDF(t *testing.T) {
	_, err := crypto.Seal("p", []byte("x"), crypto.KDFParams{Name: "md5"})
	assert.Error(t, err)
}

func TestEnvelope_FutureVersion(t *testing.T) {
	blob, err := crypto.Seal("p", []byte("x"), fastKDF())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(blob, &m))
	m["v"] = 99
	blob, err = json.Marshal(m)
	require.NoError(t, err)

	_, err = crypto.Open("p", blob)
	assert.ErrorContains(t, err, "unsupported keystore version")
}

func TestKeypair_SignVerifies(t *testing.T) {
	k, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	msg := []byte("msg")
	sig, err := k.Sign(msg)
	require.NoError(t, err)
	assert.True(t, k.PublicKey().Verify(msg, sig))
	assert.Equal(t, k.PublicKey(), k.PrivateKey().PublicKey())
}

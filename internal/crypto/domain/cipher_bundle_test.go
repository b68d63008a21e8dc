package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeBundle() CipherBundle {
	return CipherBundle{
		Ciphertext:   []byte("ciphertext-bytes"),
		Nonce:        bytes.Repeat([]byte{0x01}, NonceSize),
		AuthTag:      bytes.Repeat([]byte{0x02}, TagSize),
		EncryptedKey: []byte("wrapped-key-bytes"),
	}
}

func TestCipherBundle_Validate(t *testing.T) {
	t.Run("empty bundle is valid", func(t *testing.T) {
		assert.NoError(t, CipherBundle{}.Validate())
	})

	t.Run("complete bundle is valid", func(t *testing.T) {
		assert.NoError(t, completeBundle().Validate())
	})

	t.Run("partial bundle is rejected", func(t *testing.T) {
		bundle := completeBundle()
		bundle.AuthTag = nil
		assert.ErrorIs(t, bundle.Validate(), ErrIncompleteBundle)
	})

	t.Run("wrong nonce size is rejected", func(t *testing.T) {
		bundle := completeBundle()
		bundle.Nonce = []byte("short")
		assert.ErrorIs(t, bundle.Validate(), ErrIncompleteBundle)
	})

	t.Run("wrong tag size is rejected", func(t *testing.T) {
		bundle := completeBundle()
		bundle.AuthTag = bundle.AuthTag[:TagSize-1]
		assert.ErrorIs(t, bundle.Validate(), ErrIncompleteBundle)
	})
}

func TestCipherBundle_EncodeDecode(t *testing.T) {
	bundle := completeBundle()

	encoded := bundle.Encode()
	assert.NotEmpty(t, encoded.Ciphertext)
	assert.NotEmpty(t, encoded.Nonce)
	assert.NotEmpty(t, encoded.AuthTag)
	assert.NotEmpty(t, encoded.EncryptedKey)

	decoded, err := encoded.Decode()
	require.NoError(t, err)
	assert.Equal(t, bundle, decoded)
}

func TestEncodedCipherBundle_Decode_Invalid(t *testing.T) {
	t.Run("invalid base64", func(t *testing.T) {
		encoded := completeBundle().Encode()
		encoded.Ciphertext = "not//valid==base64!!"
		_, err := encoded.Decode()
		assert.ErrorIs(t, err, ErrIncompleteBundle)
	})

	t.Run("partial fields", func(t *testing.T) {
		encoded := completeBundle().Encode()
		encoded.EncryptedKey = ""
		_, err := encoded.Decode()
		assert.ErrorIs(t, err, ErrIncompleteBundle)
	})
}

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm("aes-gcm")
	require.NoError(t, err)
	assert.Equal(t, AESGCM, alg)

	alg, err = ParseAlgorithm("chacha20-poly1305")
	require.NoError(t, err)
	assert.Equal(t, ChaCha20, alg)

	_, err = ParseAlgorithm("des-cbc")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestZero(t *testing.T) {
	key := []byte{1, 2, 3, 4}
	Zero(key)
	assert.Equal(t, []byte{0, 0, 0, 0}, key)

	// nil is a no-op
	Zero(nil)
}

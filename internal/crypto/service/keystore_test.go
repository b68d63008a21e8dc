package service

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/mvidal/ordervault/internal/crypto/domain"
	apperrors "github.com/mvidal/ordervault/internal/errors"
	"github.com/mvidal/ordervault/internal/testutil"
)

func TestKeyStore_LoadAndCache(t *testing.T) {
	publicPath, privatePath := testutil.WriteTestKeyPair(t)
	store := NewKeyStore(publicPath, privatePath)

	publicKey, err := store.PublicKey()
	require.NoError(t, err)
	require.NotNil(t, publicKey)

	privateKey, err := store.PrivateKey()
	require.NoError(t, err)
	require.NotNil(t, privateKey)

	// The keypair matches
	assert.Equal(t, publicKey.N, privateKey.N)

	// Subsequent calls return the exact same cached instance
	again, err := store.PublicKey()
	require.NoError(t, err)
	assert.Same(t, publicKey, again)
}

func TestKeyStore_LoadsOnce(t *testing.T) {
	publicPath, privatePath := testutil.WriteTestKeyPair(t)
	store := NewKeyStore(publicPath, privatePath)

	first, err := store.PublicKey()
	require.NoError(t, err)

	// Removing the file proves later calls are served from the cache,
	// not from a second read.
	require.NoError(t, os.Remove(publicPath))

	second, err := store.PublicKey()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestKeyStore_ConcurrentFirstUse(t *testing.T) {
	publicPath, privatePath := testutil.WriteTestKeyPair(t)
	store := NewKeyStore(publicPath, privatePath)

	const goroutines = 32
	keys := make([]*rsa.PublicKey, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key, err := store.PublicKey()
			assert.NoError(t, err)
			keys[i] = key
		}(i)
	}
	wg.Wait()

	// All callers observe the single cached instance.
	for i := 1; i < goroutines; i++ {
		assert.Same(t, keys[0], keys[i])
	}
}

func TestKeyStore_MissingFile(t *testing.T) {
	store := NewKeyStore("does/not/exist.pem", "does/not/exist.pem")

	_, err := store.PublicKey()
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyMaterial)
	assert.ErrorIs(t, err, apperrors.ErrConfig)

	_, err = store.PrivateKey()
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyMaterial)
}

func TestKeyStore_NotPEM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.pem")
	require.NoError(t, os.WriteFile(path, []byte("this is not a key"), 0o600))

	store := NewKeyStore(path, path)

	_, err := store.PublicKey()
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyMaterial)
}

func TestKeyStore_NotRSA(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&ecKey.PublicKey)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "ec.pem")
	pemData := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	require.NoError(t, os.WriteFile(path, pemData, 0o600))

	store := NewKeyStore(path, path)

	_, err = store.PublicKey()
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyMaterial)
}

func TestKeyStore_ModulusTooSmall(t *testing.T) {
	smallKey, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	publicPath, privatePath := testutil.WriteKeyPairPEM(t, smallKey)
	store := NewKeyStore(publicPath, privatePath)

	_, err = store.PublicKey()
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyMaterial)

	_, err = store.PrivateKey()
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyMaterial)
}

func TestKeyStore_PKCS1Encodings(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	publicPath := filepath.Join(dir, "public.pem")
	privatePath := filepath.Join(dir, "private.pem")

	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey),
	})
	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0o600))
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0o600))

	store := NewKeyStore(publicPath, privatePath)

	publicKey, err := store.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, key.N, publicKey.N)

	privateKey, err := store.PrivateKey()
	require.NoError(t, err)
	assert.Equal(t, key.N, privateKey.N)
}

package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTestKeyPair generates a 2048-bit RSA keypair and writes it as PEM files
// into a per-test temporary directory. Returns the public and private key paths.
func WriteTestKeyPair(t *testing.T) (publicKeyPath, privateKeyPath string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "failed to generate test RSA keypair")

	return WriteKeyPairPEM(t, key)
}

// WriteKeyPairPEM writes an existing RSA keypair as PKIX/PKCS#8 PEM files into
// a per-test temporary directory. Returns the public and private key paths.
func WriteKeyPairPEM(t *testing.T, key *rsa.PrivateKey) (publicKeyPath, privateKeyPath string) {
	t.Helper()

	dir := t.TempDir()
	publicKeyPath = filepath.Join(dir, "public.pem")
	privateKeyPath = filepath.Join(dir, "private.pem")

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err, "failed to marshal public key")

	privateDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err, "failed to marshal private key")

	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})
	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateDER})

	require.NoError(t, os.WriteFile(publicKeyPath, publicPEM, 0o600))
	require.NoError(t, os.WriteFile(privateKeyPath, privatePEM, 0o600))

	return publicKeyPath, privateKeyPath
}

package service

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"sync"

	cryptoDomain "github.com/mvidal/ordervault/internal/crypto/domain"
)

// KeyStore is a file-backed KeyProvider. Each key is loaded from its configured
// PEM path on first use and cached for the process lifetime; concurrent first-use
// calls perform exactly one file read and share one parsed instance.
//
// The keypair is immutable after load and safe for unlimited concurrent readers.
// There is no teardown: lifetime equals process lifetime.
type KeyStore struct {
	publicKeyPath  string
	privateKeyPath string

	publicOnce  sync.Once
	privateOnce sync.Once
	publicKey   *rsa.PublicKey
	privateKey  *rsa.PrivateKey
	publicErr   error
	privateErr  error
}

// NewKeyStore creates a KeyStore reading the PEM-encoded keypair from the given
// paths. Nothing is read until the first PublicKey or PrivateKey call.
func NewKeyStore(publicKeyPath, privateKeyPath string) *KeyStore {
	return &KeyStore{
		publicKeyPath:  publicKeyPath,
		privateKeyPath: privateKeyPath,
	}
}

// PublicKey returns the RSA public key, loading and caching it on first use.
// Returns ErrKeyMaterial if the file is missing, unreadable, or not a valid
// RSA public key of at least 2048 bits.
func (k *KeyStore) PublicKey() (*rsa.PublicKey, error) {
	k.publicOnce.Do(func() {
		k.publicKey, k.publicErr = loadPublicKey(k.publicKeyPath)
	})
	return k.publicKey, k.publicErr
}

// PrivateKey returns the RSA private key, loading and caching it on first use.
// Returns ErrKeyMaterial if the file is missing, unreadable, or not a valid
// RSA private key of at least 2048 bits.
func (k *KeyStore) PrivateKey() (*rsa.PrivateKey, error) {
	k.privateOnce.Do(func() {
		k.privateKey, k.privateErr = loadPrivateKey(k.privateKeyPath)
	})
	return k.privateKey, k.privateErr
}

// loadPublicKey reads and parses a PEM-encoded RSA public key.
// Accepts both PKIX ("PUBLIC KEY") and PKCS#1 ("RSA PUBLIC KEY") encodings.
func loadPublicKey(path string) (*rsa.PublicKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}

	if key, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not an RSA public key", cryptoDomain.ErrKeyMaterial, path)
		}
		return checkPublicKeySize(rsaKey, path)
	}

	rsaKey, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse public key %s: %v", cryptoDomain.ErrKeyMaterial, path, err)
	}
	return checkPublicKeySize(rsaKey, path)
}

// loadPrivateKey reads and parses a PEM-encoded RSA private key.
// Accepts both PKCS#8 ("PRIVATE KEY") and PKCS#1 ("RSA PRIVATE KEY") encodings.
func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not an RSA private key", cryptoDomain.ErrKeyMaterial, path)
		}
		return checkPrivateKeySize(rsaKey, path)
	}

	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse private key %s: %v", cryptoDomain.ErrKeyMaterial, path, err)
	}
	return checkPrivateKeySize(rsaKey, path)
}

// readPEM reads a file and decodes its first PEM block.
func readPEM(path string) (*pem.Block, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read key file %s: %v", cryptoDomain.ErrKeyMaterial, path, err)
	}

	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM data in %s", cryptoDomain.ErrKeyMaterial, path)
	}
	return block, nil
}

func checkPublicKeySize(key *rsa.PublicKey, path string) (*rsa.PublicKey, error) {
	if bits := key.N.BitLen(); bits < cryptoDomain.MinRSABits {
		return nil, fmt.Errorf(
			"%w: public key %s is %d bits, minimum is %d",
			cryptoDomain.ErrKeyMaterial, path, bits, cryptoDomain.MinRSABits,
		)
	}
	return key, nil
}

func checkPrivateKeySize(key *rsa.PrivateKey, path string) (*rsa.PrivateKey, error) {
	if bits := key.N.BitLen(); bits < cryptoDomain.MinRSABits {
		return nil, fmt.Errorf(
			"%w: private key %s is %d bits, minimum is %d",
			cryptoDomain.ErrKeyMaterial, path, bits, cryptoDomain.MinRSABits,
		)
	}
	return key, nil
}

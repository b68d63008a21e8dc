// Package service implements the hybrid envelope encryption scheme: AEAD ciphers
// (AES-256-GCM, ChaCha20-Poly1305) for the payload data layer and RSA-OAEP key
// wrapping backed by a lazily loaded PEM keypair.
package service

import (
	"crypto/rsa"

	cryptoDomain "github.com/mvidal/ordervault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext
	// (with the authentication tag appended) and the generated nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyProvider supplies the long-lived RSA keypair used to wrap and unwrap the
// per-call symmetric keys. Implementations must be safe for unlimited concurrent
// readers.
type KeyProvider interface {
	// PublicKey returns the wrapping key, loading it on first use.
	PublicKey() (*rsa.PublicKey, error)

	// PrivateKey returns the unwrapping key, loading it on first use.
	PrivateKey() (*rsa.PrivateKey, error)
}

// Hybrid defines the interface for hybrid payload encryption: a fresh symmetric
// key per call, wrapped with the RSA public key.
type Hybrid interface {
	// Encrypt serializes and encrypts an arbitrary payload into a CipherBundle.
	Encrypt(payload any) (cryptoDomain.CipherBundle, error)

	// Decrypt recovers the payload from a bundle into v. Fails closed on any
	// tampering with a typed error.
	Decrypt(bundle cryptoDomain.CipherBundle, v any) error
}

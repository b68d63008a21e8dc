package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	cryptoDomain "github.com/mvidal/ordervault/internal/crypto/domain"
	apperrors "github.com/mvidal/ordervault/internal/errors"
)

// HybridCipherService implements the Hybrid interface with the envelope pattern:
// the payload is encrypted with a fresh 256-bit symmetric key under an AEAD, and
// that key is wrapped with RSA-OAEP (SHA-256) so only the private key holder can
// recover it. The symmetric key exists only for the duration of one call and is
// zeroed after wrapping, which also guarantees structurally that no nonce is
// ever reused with the same key.
//
// Asymmetric encryption alone cannot efficiently handle arbitrary-size payloads,
// and symmetric-only encryption would require pre-shared secret distribution;
// the envelope gives both scalability and offline-safe key distribution.
type HybridCipherService struct {
	keys        KeyProvider
	aeadManager AEADManager
	algorithm   cryptoDomain.Algorithm

	// fixedKey, when non-nil, replaces the per-call random key so encryptions
	// are reproducible. Test-only: it removes the fresh-key-per-call guarantee.
	fixedKey []byte
}

// NewHybridCipher creates a HybridCipherService using a fresh random symmetric
// key per encryption.
func NewHybridCipher(
	keys KeyProvider,
	aeadManager AEADManager,
	algorithm cryptoDomain.Algorithm,
) *HybridCipherService {
	return &HybridCipherService{
		keys:        keys,
		aeadManager: aeadManager,
		algorithm:   algorithm,
	}
}

// NewDeterministicHybridCipher creates a HybridCipherService that encrypts with
// the operator-supplied key instead of a random one. The key is padded or
// truncated to 32 bytes.
//
// Test-only escape hatch behind an explicit configuration flag: deterministic
// keys weaken the randomness guarantees of the scheme and must never be enabled
// in production.
func NewDeterministicHybridCipher(
	keys KeyProvider,
	aeadManager AEADManager,
	algorithm cryptoDomain.Algorithm,
	fixedKey []byte,
) *HybridCipherService {
	key := make([]byte, cryptoDomain.KeySize)
	copy(key, fixedKey)

	return &HybridCipherService{
		keys:        keys,
		aeadManager: aeadManager,
		algorithm:   algorithm,
		fixedKey:    key,
	}
}

// Encrypt serializes the payload to JSON, encrypts it with a single-use 256-bit
// key under the configured AEAD, and wraps that key with the RSA public key.
// Returns a complete CipherBundle; the plaintext symmetric key never leaves this
// call.
func (h *HybridCipherService) Encrypt(payload any) (cryptoDomain.CipherBundle, error) {
	key, err := h.symmetricKey()
	if err != nil {
		return cryptoDomain.CipherBundle{}, err
	}
	defer cryptoDomain.Zero(key)

	aead, err := h.aeadManager.CreateCipher(key, h.algorithm)
	if err != nil {
		return cryptoDomain.CipherBundle{}, err
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return cryptoDomain.CipherBundle{}, apperrors.Wrap(apperrors.ErrInvalidInput, "failed to serialize payload")
	}

	sealed, nonce, err := aead.Encrypt(plaintext, nil)
	if err != nil {
		return cryptoDomain.CipherBundle{}, fmt.Errorf("failed to encrypt payload: %w", err)
	}

	publicKey, err := h.keys.PublicKey()
	if err != nil {
		return cryptoDomain.CipherBundle{}, err
	}

	wrappedKey, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, publicKey, key, nil)
	if err != nil {
		return cryptoDomain.CipherBundle{}, fmt.Errorf("failed to wrap symmetric key: %w", err)
	}

	// The AEAD appends the tag; it is stored as its own field.
	tagStart := len(sealed) - cryptoDomain.TagSize
	return cryptoDomain.CipherBundle{
		Ciphertext:   sealed[:tagStart],
		Nonce:        nonce,
		AuthTag:      sealed[tagStart:],
		EncryptedKey: wrappedKey,
	}, nil
}

// Decrypt unwraps the symmetric key with the private key, authenticates and
// decrypts the ciphertext, and deserializes the plaintext into v.
//
// Failure modes are typed and never downgraded:
//   - ErrIncompleteBundle: the bundle violates the all-or-nothing invariant
//   - ErrKeyUnwrapFailed: the private key is unavailable or the wrapped key
//     does not decrypt (wrong key, corrupted bytes)
//   - ErrAuthenticationFailed: the tag does not verify (any bit flip in
//     ciphertext, nonce, or tag)
//   - ErrMalformedPlaintext: deserialization failed after authentication
func (h *HybridCipherService) Decrypt(bundle cryptoDomain.CipherBundle, v any) error {
	if err := bundle.Validate(); err != nil {
		return err
	}
	if !bundle.Complete() {
		return cryptoDomain.ErrIncompleteBundle
	}

	privateKey, err := h.keys.PrivateKey()
	if err != nil {
		return fmt.Errorf("%w: %w", cryptoDomain.ErrKeyUnwrapFailed, err)
	}

	key, err := rsa.DecryptOAEP(sha256.New(), nil, privateKey, bundle.EncryptedKey, nil)
	if err != nil {
		return cryptoDomain.ErrKeyUnwrapFailed
	}
	defer cryptoDomain.Zero(key)

	if len(key) != cryptoDomain.KeySize {
		return cryptoDomain.ErrKeyUnwrapFailed
	}

	aead, err := h.aeadManager.CreateCipher(key, h.algorithm)
	if err != nil {
		return err
	}

	sealed := make([]byte, 0, len(bundle.Ciphertext)+len(bundle.AuthTag))
	sealed = append(sealed, bundle.Ciphertext...)
	sealed = append(sealed, bundle.AuthTag...)

	plaintext, err := aead.Decrypt(sealed, bundle.Nonce, nil)
	if err != nil {
		return cryptoDomain.ErrAuthenticationFailed
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return cryptoDomain.ErrMalformedPlaintext
	}

	return nil
}

// symmetricKey returns the key for one encryption: a fresh random 32-byte key,
// or a copy of the fixed key when the deterministic mode is active.
func (h *HybridCipherService) symmetricKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if h.fixedKey != nil {
		copy(key, h.fixedKey)
		return key, nil
	}

	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate symmetric key: %w", err)
	}
	return key, nil
}

// Package domain defines the core types for the hybrid envelope encryption scheme:
// a per-call symmetric key encrypts the payload with an AEAD, and the symmetric key
// is wrapped with a long-lived RSA public key. The result is a CipherBundle.
package domain

import (
	"encoding/base64"
)

// CipherBundle is the persisted result of one hybrid encryption: the AEAD
// ciphertext, the 12-byte nonce, the 16-byte authentication tag, and the
// RSA-wrapped symmetric key. A bundle is either complete or absent; it is
// never partially written.
type CipherBundle struct {
	// Ciphertext is the AEAD output without the authentication tag.
	Ciphertext []byte
	// Nonce is the random 96-bit value used for this single encryption.
	Nonce []byte
	// AuthTag is the 128-bit authentication tag, stored separately.
	AuthTag []byte
	// EncryptedKey is the symmetric key wrapped with the RSA public key.
	EncryptedKey []byte
}

// EncodedCipherBundle is the storage representation of a CipherBundle: four
// independently base64-encoded text fields, nullable as a group.
type EncodedCipherBundle struct {
	Ciphertext   string
	Nonce        string
	AuthTag      string
	EncryptedKey string
}

// Complete reports whether all four fields are populated.
func (b CipherBundle) Complete() bool {
	return len(b.Ciphertext) > 0 && len(b.Nonce) > 0 && len(b.AuthTag) > 0 && len(b.EncryptedKey) > 0
}

// Empty reports whether no field is populated.
func (b CipherBundle) Empty() bool {
	return len(b.Ciphertext) == 0 && len(b.Nonce) == 0 && len(b.AuthTag) == 0 && len(b.EncryptedKey) == 0
}

// Validate enforces the all-or-nothing invariant and the fixed nonce/tag sizes.
func (b CipherBundle) Validate() error {
	if b.Empty() {
		return nil
	}
	if !b.Complete() {
		return ErrIncompleteBundle
	}
	if len(b.Nonce) != NonceSize || len(b.AuthTag) != TagSize {
		return ErrIncompleteBundle
	}
	return nil
}

// Encode returns the base64 storage representation of the bundle.
func (b CipherBundle) Encode() EncodedCipherBundle {
	return EncodedCipherBundle{
		Ciphertext:   base64.StdEncoding.EncodeToString(b.Ciphertext),
		Nonce:        base64.StdEncoding.EncodeToString(b.Nonce),
		AuthTag:      base64.StdEncoding.EncodeToString(b.AuthTag),
		EncryptedKey: base64.StdEncoding.EncodeToString(b.EncryptedKey),
	}
}

// Decode converts the storage representation back into a CipherBundle and
// validates the bundle invariant. Returns ErrIncompleteBundle if any field
// fails to decode or the decoded bundle is partial.
func (e EncodedCipherBundle) Decode() (CipherBundle, error) {
	fields := []string{e.Ciphertext, e.Nonce, e.AuthTag, e.EncryptedKey}
	decoded := make([][]byte, len(fields))
	for i, field := range fields {
		raw, err := base64.StdEncoding.DecodeString(field)
		if err != nil {
			return CipherBundle{}, ErrIncompleteBundle
		}
		decoded[i] = raw
	}

	bundle := CipherBundle{
		Ciphertext:   decoded[0],
		Nonce:        decoded[1],
		AuthTag:      decoded[2],
		EncryptedKey: decoded[3],
	}
	if err := bundle.Validate(); err != nil {
		return CipherBundle{}, err
	}
	return bundle, nil
}

package domain

import (
	"github.com/mvidal/ordervault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors so
// callers can pattern-match with errors.Is instead of inspecting messages.
// Authentication failures are never collapsed into a generic decryption error:
// tampering must stay distinguishable from "not found" or bad input.
var (
	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	//
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the symmetric key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrKeyMaterial indicates the RSA key material is missing, unreadable, or not
	// parseable as the expected PEM encoding. Fatal: the process should not serve
	// requests without valid keys.
	ErrKeyMaterial = errors.Wrap(errors.ErrConfig, "invalid key material")

	// ErrKeyUnwrapFailed indicates the wrapped symmetric key could not be recovered
	// with the private key (wrong key or corrupted wrapped-key bytes).
	ErrKeyUnwrapFailed = errors.Wrap(errors.ErrInvalidInput, "key unwrap failed")

	// ErrAuthenticationFailed indicates the authentication tag did not verify.
	// This is the tamper-detection guarantee: any bit flip in ciphertext, nonce,
	// or tag fails closed here instead of returning corrupted plaintext.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrInvalidInput, "authentication failed")

	// ErrMalformedPlaintext indicates deserialization failed after a successful
	// authentication check. Should not happen under correct operation; indicates
	// a serialization format mismatch.
	ErrMalformedPlaintext = errors.Wrap(errors.ErrInvalidInput, "malformed plaintext")

	// ErrIncompleteBundle indicates a cipher bundle with some but not all of its
	// four fields populated. Bundles are written all-or-nothing.
	ErrIncompleteBundle = errors.Wrap(errors.ErrInvalidInput, "incomplete cipher bundle")
)

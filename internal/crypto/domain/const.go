package domain

// Algorithm identifies an AEAD algorithm used for the payload data layer.
type Algorithm string

// Supported AEAD algorithms.
const (
	AESGCM   Algorithm = "aes-gcm"
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// Sizes fixed by the hybrid scheme.
const (
	// KeySize is the symmetric key size in bytes (256 bits).
	KeySize = 32
	// NonceSize is the AEAD nonce size in bytes (96 bits).
	NonceSize = 12
	// TagSize is the authentication tag size in bytes (128 bits).
	TagSize = 16
	// MinRSABits is the minimum accepted RSA modulus size.
	MinRSABits = 2048
)

// ParseAlgorithm converts an algorithm name to an Algorithm.
// Returns ErrUnsupportedAlgorithm for unknown names.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}

package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cryptoDomain "github.com/mvidal/ordervault/internal/crypto/domain"
)

// RunGenerateKeys generates the RSA keypair used to wrap per-order symmetric
// keys and writes it as PEM files into outputDir. The private key file is
// created with owner-only permissions.
func RunGenerateKeys(w io.Writer, outputDir string, bits int) error {
	if bits < cryptoDomain.MinRSABits {
		return fmt.Errorf("key size %d is below the %d-bit minimum", bits, cryptoDomain.MinRSABits)
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("failed to generate RSA keypair: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to marshal public key: %w", err)
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	privateDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fmt.Errorf("failed to marshal private key: %w", err)
	}
	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateDER})

	publicPath := filepath.Join(outputDir, "public.pem")
	privatePath := filepath.Join(outputDir, "private.pem")

	if err := os.WriteFile(publicPath, publicPEM, 0o644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}
	if err := os.WriteFile(privatePath, privatePEM, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	fmt.Fprintln(w, "# RSA keypair generated")
	fmt.Fprintf(w, "RSA_PUBLIC_KEY_PATH=%q\n", publicPath)
	fmt.Fprintf(w, "RSA_PRIVATE_KEY_PATH=%q\n", privatePath)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "# Keep private.pem out of version control; anyone holding it can decrypt stored payloads.")

	return nil
}

package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"
)

const sshKeyBits = 4096

// EnsureSSHKeyPair reuses or generates an RSA key pair under dir and returns
// the public key in authorized_keys format.
func EnsureSSHKeyPair(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	privatePath := filepath.Join(dir, "id_rsa")
	publicPath := filepath.Join(dir, "id_rsa.pub")

	if _, err := os.Stat(privatePath); err == nil {
		PrintStatus("Using existing SSH key pair")
		data, err := os.ReadFile(publicPath)
		if err != nil {
			return "", fmt.Errorf("failed to read existing public key: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	PrintStatus("Generating new SSH key pair...")

	privateKey, err := rsa.GenerateKey(rand.Reader, sshKeyBits)
	if err != nil {
		return "", fmt.Errorf("failed to generate private key: %w", err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
	if err := os.WriteFile(privatePath, privatePEM, 0o600); err != nil {
		return "", fmt.Errorf("failed to write private key: %w", err)
	}

	publicKey, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return "", fmt.Errorf("failed to derive public key: %w", err)
	}
	publicBytes := ssh.MarshalAuthorizedKey(publicKey)
	if err := os.WriteFile(publicPath, publicBytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to write public key: %w", err)
	}

	PrintSuccess("SSH key pair generated at %s/", dir)
	return strings.TrimSpace(string(publicBytes)), nil
}

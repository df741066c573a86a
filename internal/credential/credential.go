// Package credential encrypts API keys before they land in the config file.
// AES-256-GCM with a machine-derived key: the stored value is useless when
// the config file is copied to another machine, which is the only threat
// model a local single-user tool needs.
package credential

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// EncryptedPrefix marks values as encrypted in storage.
const EncryptedPrefix = "enc:v1:"

const derivationSalt = "lettersmith-credential-manager-v1"

var (
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidFormat    = errors.New("invalid encrypted format")
)

// Manager encrypts and decrypts secrets with a machine-bound key.
type Manager struct {
	key []byte
}

// NewManager derives the key from stable machine identifiers, so it
// survives restarts but not a move to different hardware or user.
func NewManager() (*Manager, error) {
	hostname, _ := os.Hostname()
	home, _ := os.UserHomeDir()

	parts := []string{
		hostname,
		home,
		runtime.GOOS,
		runtime.GOARCH,
		derivationSalt,
		fmt.Sprintf("uid:%d", os.Getuid()),
		os.Getenv("USER"),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return &Manager{key: sum[:]}, nil
}

func (m *Manager) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(m.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// Encrypt seals a plaintext value into a storable string. Empty input
// stays empty so absent keys never gain a ciphertext.
func (m *Manager) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	gcm, err := m.aead()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return EncryptedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a stored value. Plaintext values pass through unchanged
// so keys written by hand into the config file keep working.
func (m *Manager) Decrypt(stored string) (string, error) {
	if !IsEncrypted(stored) {
		return stored, nil
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, EncryptedPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64: %v", ErrInvalidFormat, err)
	}

	gcm, err := m.aead()
	if err != nil {
		return "", err
	}
	if len(raw) < gcm.NonceSize() {
		return "", ErrInvalidFormat
	}

	plaintext, err := gcm.Open(nil, raw[:gcm.NonceSize()], raw[gcm.NonceSize():], nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// IsEncrypted reports whether a stored value carries the encrypted marker.
func IsEncrypted(value string) bool {
	return strings.HasPrefix(value, EncryptedPrefix)
}

// MaskSecret shortens a secret for display: first and last 4 characters
// when long enough, a fixed marker otherwise.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// Package token implements the remember-me credential: the login email wrapped
// in a fixed sentinel and sealed with AES-256-GCM under a server-held key.
//
// The credential provides confidentiality only. It carries no claim signature,
// so the recovered email must always be re-validated against the user store
// before any authorization decision is made.
package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// sentinel delimits the email inside the sealed payload. Decryption that does
// not yield a sentinel-wrapped payload is treated as a malformed token.
const sentinel = "#timetrack#"

// ErrMalformedToken is returned when a remember-me token cannot be decoded,
// fails decryption, or decrypts to a payload without the sentinel wrapper.
var ErrMalformedToken = errors.New("malformed remember-me token")

// Sealer seals and opens remember-me tokens with a fixed 32-byte key.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer creates a Sealer from a 32-byte AES-256 key.
func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal produces an opaque remember-me token for the given login email.
// A fresh random nonce is generated per token and prepended to the ciphertext.
func (s *Sealer) Seal(email string) (string, error) {
	if strings.Contains(email, sentinel) {
		return "", fmt.Errorf("email must not contain the sentinel %q", sentinel)
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	plaintext := []byte(sentinel + email + sentinel)
	sealed := s.aead.Seal(nonce, nonce, plaintext, nil)

	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal and recovers the login email, stripping the sentinel.
// Any tampered, truncated or foreign input fails with ErrMalformedToken.
func (s *Sealer) Open(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrMalformedToken
	}
	if len(raw) < s.aead.NonceSize() {
		return "", ErrMalformedToken
	}

	nonce, ciphertext := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrMalformedToken
	}

	text := string(plaintext)
	if !strings.HasPrefix(text, sentinel) || !strings.HasSuffix(text, sentinel) ||
		len(text) < 2*len(sentinel) {
		return "", ErrMalformedToken
	}

	return text[len(sentinel) : len(text)-len(sentinel)], nil
}

package utils

import (
	"github.com/matthewhartstonge/argon2"
)

// Argon2Hasher stores credentials in argon2's self-describing encoded form.
type Argon2Hasher struct {
	config argon2.Config
}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{config: argon2.DefaultConfig()}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	encoded, err := h.config.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (h *Argon2Hasher) Verify(encodedHash, password string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}

package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

// GenActivationCode returns a URL-safe random code exchanged once to
// activate an account.
func GenActivationCode() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

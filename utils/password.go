package utils

import (
	"github.com/matthewhartstonge/argon2"
)

// HashPassword returns the PHC-encoded argon2id hash of password.
func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()
	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// CheckPassword reports whether password matches encodedHash. A hash that
// cannot be decoded never matches.
func CheckPassword(encodedHash, password string) bool {
	if encodedHash == "" || password == "" {
		return false
	}
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	return err == nil && ok
}

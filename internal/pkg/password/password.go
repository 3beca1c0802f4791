package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost keeps a single verification around a few hundred milliseconds.
const Cost = 12

func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// Verify reports whether plain matches hash. Only a mismatch yields false with a
// nil error; a malformed hash is returned as an error.
func Verify(hash, plain string) (bool, error) {
	err := Compare(hash, plain)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

package hash

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashbytes), nil
}

// CheckPassword verifies a plaintext against a stored bcrypt hash. A stored
// value that is not a bcrypt hash means the record is corrupt, which counts
// as a failed verification rather than an error.
func CheckPassword(hash, password string) bool {
	if !IsBcryptHash(hash) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func IsBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2")
}

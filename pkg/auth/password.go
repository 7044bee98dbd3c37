package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsPasswordHash reports whether stored looks like a bcrypt hash rather than a plaintext password.
func IsPasswordHash(stored string) bool {
	if len(stored) != 60 {
		return false
	}
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(stored, prefix) {
			return true
		}
	}
	return false
}

// MatchPassword compares a login attempt with the stored admin password. Plaintext values are
// compared exactly (case-sensitive); bcrypt hashes are verified with bcrypt.
func MatchPassword(attempt, stored string) bool {
	if IsPasswordHash(stored) {
		return CheckPasswordHash(attempt, stored)
	}
	return attempt == stored
}

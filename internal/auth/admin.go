package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func HashAdminKey(key string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash admin key: %w", err)
	}
	return string(hashed), nil
}

// CheckAdminKey reports whether key matches hash. An empty hash never
// matches, which leaves initialize disabled until one is configured.
func CheckAdminKey(hash, key string) bool {
	if hash == "" || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

package customers

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters, kept compatible with hashes the desktop app produced.
const (
	pbkdf2Iterations = 65536
	pbkdf2KeyLen     = 16
	saltLen          = 14
)

// HashPassword derives a salted PBKDF2 hash, encoded as
// base64(salt):base64(hash).
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	hash := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha1.New)
	return base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(hash), nil
}

// CheckPassword reports whether password matches the stored salt:hash pair.
// Malformed stored values simply fail the check.
func CheckPassword(password, stored string) bool {
	salt64, hash64, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(salt64)
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(hash64)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, len(want), sha1.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

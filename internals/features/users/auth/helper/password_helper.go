package helpers

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hash bcrypt selalu diawali "$2a$", "$2b$" atau "$2y$"
func IsBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword: hash bcrypt dibandingkan via bcrypt, selain itu plaintext
// (backup lama menyimpan password apa adanya).
func CheckPassword(stored, plain string) bool {
	if IsBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	return stored == plain
}

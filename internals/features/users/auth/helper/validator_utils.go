package helpers

import (
	"errors"
	"regexp"
	"strings"
)

var (
	reUsername = regexp.MustCompile(`^[A-Za-z0-9._\-]{3,32}$`)
	reEmail    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Validasi Email (regex simple); kosong dianggap valid karena email opsional
func IsValidEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return true
	}
	return reEmail.MatchString(email)
}

func ValidateNewUser(username, password string) error {
	if !reUsername.MatchString(username) {
		return errors.New("username harus 3-32 karakter (huruf, angka, . _ -)")
	}
	if len(password) < 4 {
		return errors.New("password minimal 4 karakter")
	}
	return nil
}

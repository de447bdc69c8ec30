package ssh

import (
	gossh "github.com/gliderlabs/ssh"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHandler accepts logins whose password matches the bcrypt hash.
// An empty hash returns nil, which leaves the server open to anyone.
func PasswordHandler(hash string) gossh.PasswordHandler {
	if hash == "" {
		return nil
	}
	h := []byte(hash)
	return func(_ gossh.Context, password string) bool {
		return bcrypt.CompareHashAndPassword(h, []byte(password)) == nil
	}
}

// HashPassword returns a bcrypt hash suitable for PasswordHandler.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}

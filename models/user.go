package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Identity is the signed-in user as seen by the rest of the system.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (i *Identity) Validate() error {
	if strings.TrimSpace(i.ID) == "" || strings.TrimSpace(i.Email) == "" {
		return ErrInvalidIdentity
	}
	return nil
}

// Account is a registered user together with the password hash.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity returns the public part of the account.
func (a *Account) Identity() *Identity {
	return &Identity{ID: a.ID, Name: a.Name, Email: a.Email}
}

// SetPassword hashes and stores the password.
func (a *Account) SetPassword(password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	a.PasswordHash = hashed
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (a *Account) CheckPassword(password string) bool {
	return CheckPasswordHash(password, a.PasswordHash)
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

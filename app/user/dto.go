package user

import (
	"time"

	"github.com/joefazee/atlas/internal/sanitizer"
	"github.com/joefazee/atlas/internal/validator"
	"github.com/joefazee/atlas/models"
)

const minPasswordLength = 6

// RegisterUserRequest represents the request to create an account.
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Sanitize strips markup from the display name and normalizes the email.
func (r *RegisterUserRequest) Sanitize(s sanitizer.HTMLStripperer) {
	r.Name = sanitizer.CollapseSpaces(s.StripHTML(r.Name))
	r.Email = models.NormalizeEmail(r.Email)
}

func (r *RegisterUserRequest) Validate(v *validator.Validator) bool {
	v.Check(validator.NotBlank(r.Name), "name", "name is required")
	v.Check(validator.MaxRunes(r.Name, 150), "name", "name must not be more than 150 characters")
	v.Check(validator.IsEmail(r.Email), "email", "email is invalid")
	v.Check(validator.MinRunes(r.Password, minPasswordLength), "password", "password must be at least 6 characters")
	v.Check(validator.MaxRunes(r.Password, 72), "password", "password must not be more than 72 characters")
	return v.Valid()
}

// LoginRequest represents the request to sign in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate(v *validator.Validator) bool {
	r.Email = models.NormalizeEmail(r.Email)
	v.Check(validator.IsEmail(r.Email), "email", "email is invalid")
	v.Check(r.Password != "", "password", "password is required")
	return v.Valid()
}

// LoginResponse is returned by register and login.
type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
	User        *models.Identity `json:"user"`
}

package security

import "time"

// Maker issues and verifies session tokens.
type Maker interface {
	// CreateToken issues a token for the account id subject, valid for duration.
	CreateToken(subject string, duration time.Duration) (string, *Payload, error)

	// VerifyToken returns ErrInvalidToken for tokens it cannot read and
	// ErrExpiredToken once the expiry has passed.
	VerifyToken(token string) (*Payload, error)
}

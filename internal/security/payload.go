package security

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Payload is the body of a session token. Subject is the account id and ID names the
// server side session record.
type Payload struct {
	ID        uuid.UUID `json:"jti"`
	Subject   string    `json:"sub"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

func NewPayload(subject string, duration time.Duration) (*Payload, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, ErrInvalidToken
	}
	sessionID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Payload{
		ID:        sessionID,
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: now.Add(duration),
	}, nil
}

// SessionID is the storage key suffix of the session the token was issued for.
func (p *Payload) SessionID() string {
	return p.ID.String()
}

func (p *Payload) Valid() error {
	if p.ID == uuid.Nil || p.Subject == "" {
		return ErrInvalidToken
	}
	if !time.Now().Before(p.ExpiresAt) {
		return ErrExpiredToken
	}
	return nil
}

package user

import (
	"context"
	"time"

	"github.com/joefazee/atlas/models"
)

// Repository keeps accounts and sign-in sessions in the local storage area.
type Repository interface {
	GetAccounts(ctx context.Context) ([]models.Account, error)
	SaveAccounts(ctx context.Context, accounts []models.Account) error

	SaveSession(ctx context.Context, sessionID string, identity *models.Identity, expiresAt time.Time) error
	GetSession(ctx context.Context, sessionID string) (*models.Identity, error)
	DeleteSession(ctx context.Context, sessionID string) error
	PurgeExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

type Service interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*LoginResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/joefazee/atlas/app/storage"
	"github.com/joefazee/atlas/models"
)

const (
	accountsKey         = "users"
	sessionKeyPrefix    = "session:"
	sessionExpiryPrefix = "session_expiry:"
)

// repository implements the Repository interface on the local storage area
type repository struct {
	store storage.Repository
}

// NewRepository creates a new user repository
func NewRepository(store storage.Repository) Repository {
	return &repository{store: store}
}

func (r *repository) GetAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	err := r.store.Get(ctx, accountsKey, &accounts)
	if errors.Is(err, models.ErrRecordNotFound) {
		return []models.Account{}, nil
	}
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *repository) SaveAccounts(ctx context.Context, accounts []models.Account) error {
	return r.store.Set(ctx, accountsKey, accounts)
}

// SaveSession writes the identity record and its expiry. Token expiry governs validity;
// the stored expiry only lets PurgeExpiredSessions find stale records.
func (r *repository) SaveSession(ctx context.Context, sessionID string, identity *models.Identity, expiresAt time.Time) error {
	if err := r.store.Set(ctx, sessionKeyPrefix+sessionID, identity); err != nil {
		return err
	}
	return r.store.Set(ctx, sessionExpiryPrefix+sessionID, expiresAt.UTC().Format(time.RFC3339))
}

func (r *repository) GetSession(ctx context.Context, sessionID string) (*models.Identity, error) {
	var identity models.Identity
	if err := r.store.Get(ctx, sessionKeyPrefix+sessionID, &identity); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.ErrSessionNotFound
		}
		return nil, err
	}
	return &identity, nil
}

func (r *repository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.store.Delete(ctx, sessionKeyPrefix+sessionID); err != nil {
		return err
	}
	return r.store.Delete(ctx, sessionExpiryPrefix+sessionID)
}

// PurgeExpiredSessions deletes every session whose stored expiry is before now and
// returns how many went. Records with an unreadable expiry are left alone.
func (r *repository) PurgeExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	keys, err := r.store.Keys(ctx, sessionExpiryPrefix)
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, key := range keys {
		var stamp string
		if err := r.store.Get(ctx, key, &stamp); err != nil {
			continue
		}
		expiresAt, err := time.Parse(time.RFC3339, stamp)
		if err != nil || !expiresAt.Before(now) {
			continue
		}
		if err := r.DeleteSession(ctx, strings.TrimPrefix(key, sessionExpiryPrefix)); err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}

package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joefazee/atlas/internal/cache"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/security"
	"github.com/joefazee/atlas/internal/validator"
	"github.com/joefazee/atlas/models"
)

type service struct {
	repo       Repository
	tokenMaker security.Maker
	identities cache.Cache[models.Identity]
	cfg        *Config
	log        logger.Logger
	now        func() time.Time

	// accounts live in one stored array, so registration is read-modify-write
	mu sync.Mutex
}

// NewService creates a new user service. identities may be nil to disable caching.
func NewService(repo Repository, tokenMaker security.Maker, identities cache.Cache[models.Identity], cfg *Config, log logger.Logger) Service {
	if cfg == nil {
		cfg = GetDefaultConfig()
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &service{
		repo:       repo,
		tokenMaker: tokenMaker,
		identities: identities,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterUserRequest) (*LoginResponse, error) {
	v := validator.New()
	if !req.Validate(v) {
		return nil, v.Err("invalid registration")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.repo.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Email == req.Email {
			return nil, models.ErrAccountExists
		}
	}

	account := models.Account{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: s.now().UTC(),
	}
	if err := account.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.SaveAccounts(ctx, append(accounts, account)); err != nil {
		return nil, err
	}
	s.log.Info("account registered", logger.Fields{"user_id": account.ID})

	return s.signIn(ctx, &account)
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	v := validator.New()
	if !req.Validate(v) {
		return nil, v.Err("invalid login")
	}

	accounts, err := s.repo.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Email != req.Email {
			continue
		}
		if !accounts[i].CheckPassword(req.Password) {
			break
		}
		return s.signIn(ctx, &accounts[i])
	}
	return nil, models.ErrInvalidCredentials
}

func (s *service) signIn(ctx context.Context, account *models.Account) (*LoginResponse, error) {
	token, payload, err := s.tokenMaker.CreateToken(account.ID, s.cfg.SessionDuration)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	identity := account.Identity()
	sessionID := payload.SessionID()
	if err := s.repo.SaveSession(ctx, sessionID, identity, payload.ExpiresAt); err != nil {
		return nil, err
	}
	s.remember(ctx, sessionID, identity)
	s.purgeExpiredSessions(ctx)

	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   payload.ExpiresAt,
		User:        identity,
	}, nil
}

// purgeExpiredSessions drops stale session records. A failure only costs storage, so
// the sign-in still succeeds.
func (s *service) purgeExpiredSessions(ctx context.Context) {
	purged, err := s.repo.PurgeExpiredSessions(ctx, s.now())
	if err != nil {
		s.log.Warn("purge expired sessions failed", logger.Fields{"error": err.Error()})
		return
	}
	if purged > 0 {
		s.log.Debug("expired sessions purged", logger.Fields{"count": purged})
	}
}

func (s *service) Logout(ctx context.Context, token string) error {
	payload, err := s.verify(token)
	if err != nil {
		return err
	}

	sessionID := payload.SessionID()
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	if s.identities != nil {
		if err := s.identities.Delete(ctx, sessionID); err != nil {
			s.log.Warn("failed to evict session from cache", logger.Fields{"session_id": sessionID, "error": err.Error()})
		}
	}
	return nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	payload, err := s.verify(token)
	if err != nil {
		return nil, err
	}
	sessionID := payload.SessionID()

	if s.identities != nil {
		cached, err := s.identities.Get(ctx, sessionID)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("session cache lookup failed", logger.Fields{"session_id": sessionID, "error": err.Error()})
		}
	}

	identity, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if identity.ID != payload.Subject {
		return nil, models.ErrUnauthorized
	}

	s.remember(ctx, sessionID, identity)
	return identity, nil
}

func (s *service) verify(token string) (*security.Payload, error) {
	payload, err := s.tokenMaker.VerifyToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrUnauthorized, err)
	}
	return payload, nil
}

func (s *service) remember(ctx context.Context, sessionID string, identity *models.Identity) {
	if s.identities == nil || s.cfg.IdentityCacheTTL <= 0 {
		return
	}
	if err := s.identities.Set(ctx, sessionID, *identity, s.cfg.IdentityCacheTTL); err != nil {
		s.log.Warn("failed to cache session", logger.Fields{"session_id": sessionID, "error": err.Error()})
	}
}

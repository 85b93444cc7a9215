// internal/services/session_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rishvigems/gems-backend/internal/backend"
	"github.com/rishvigems/gems-backend/internal/config"
	"github.com/rishvigems/gems-backend/internal/models"
	"github.com/rishvigems/gems-backend/internal/utils"
)

// Standing demo identity: these credentials always sign in, with or without a
// configured backend.
const (
	DemoEmail    = "admin@rishvigems.com"
	DemoPassword = "admin123"

	demoUserID   = "demo-user"
	sessionTopic = "session:changed"
)

// Identity is the authenticated-user view exposed to the rest of the system.
type Identity struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// AuthSession is returned on successful sign-in and carries the token the
// HTTP surface uses on subsequent mutating requests.
type AuthSession struct {
	User        *Identity `json:"user"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"` // in seconds
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SessionService owns the signed-out/signed-in state machine. The current
// identity is process-wide and mutated only through the transition methods;
// the mutex makes that safe under concurrent HTTP handlers.
type SessionService struct {
	mu      sync.RWMutex
	current *Identity

	bus     evbus.Bus
	gateway *backend.Gateway
	cfg     *config.Config
}

func NewSessionService(gateway *backend.Gateway, cfg *config.Config) *SessionService {
	return &SessionService{
		bus:     evbus.New(),
		gateway: gateway,
		cfg:     cfg,
	}
}

// SignIn transitions to SignedIn on success. The demo credential pair is
// honored before any backend call; an unconfigured backend rejects everything
// else with a message naming the demo fallback.
func (s *SessionService) SignIn(ctx context.Context, req *SignInRequest) (*AuthSession, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Email == DemoEmail && req.Password == DemoPassword {
		logrus.Info("Using demo credentials")
		identity := &Identity{ID: demoUserID, Email: DemoEmail, Role: models.UserRoleAdmin}
		s.establish(identity)
		return s.issueSession(identity)
	}

	if !s.gateway.Live() {
		return nil, fmt.Errorf("%w: use demo credentials %s / %s", ErrNotConfigured, DemoEmail, DemoPassword)
	}

	var user models.User
	if err := s.gateway.DB().WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	s.gateway.DB().WithContext(ctx).Save(&user)

	identity := &Identity{ID: user.ID, Email: user.Email, Role: user.Role}
	s.establish(identity)
	return s.issueSession(identity)
}

// SignUp creates an account. It does not transition the session: the caller
// still signs in afterward. In demo mode the account is synthesized and not
// persisted.
func (s *SessionService) SignUp(ctx context.Context, req *SignUpRequest) (*Identity, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !s.gateway.Live() {
		logrus.Info("Demo mode: synthesizing account without persistence")
		return &Identity{
			ID:    fmt.Sprintf("demo-user-%d", time.Now().UnixMilli()),
			Email: req.Email,
			Role:  models.UserRoleAdmin,
		}, nil
	}

	var existing models.User
	if err := s.gateway.DB().WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, errors.New("user with this email already exists")
	}

	user := &models.User{Email: req.Email, Role: models.UserRoleAdmin}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.gateway.DB().WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &Identity{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// SignOut clears the session. Already signed out is a no-op and produces no
// notification.
func (s *SessionService) SignOut(_ context.Context) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.mu.Unlock()

	s.bus.Publish(sessionTopic, (*Identity)(nil))
}

// Current returns the present state without side effects: the signed-in
// identity, or nil when signed out.
func (s *SessionService) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	identity := *s.current
	return &identity
}

// Subscribe registers a listener invoked synchronously on every transition
// with the new identity (nil on sign-out). The returned handle removes the
// subscription; no notifications are delivered after it runs.
func (s *SessionService) Subscribe(callback func(*Identity)) func() {
	if err := s.bus.Subscribe(sessionTopic, callback); err != nil {
		logrus.WithError(err).Error("Failed to register session subscriber")
		return func() {}
	}
	return func() {
		s.bus.Unsubscribe(sessionTopic, callback)
	}
}

func (s *SessionService) establish(identity *Identity) {
	s.mu.Lock()
	copied := *identity
	s.current = &copied
	s.mu.Unlock()

	s.bus.Publish(sessionTopic, identity)
}

func (s *SessionService) issueSession(identity *Identity) (*AuthSession, error) {
	token, err := utils.GenerateJWT(identity.ID, identity.Email, string(identity.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthSession{
		User:        identity,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}

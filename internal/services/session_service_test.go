// internal/services/session_service_test.go
package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rishvigems/gems-backend/internal/backend"
	"github.com/rishvigems/gems-backend/internal/config"
	"github.com/rishvigems/gems-backend/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 1,
		},
	}
}

// demoGateway builds a gateway with no backend configured, so every service
// under test runs in demo mode without touching a database.
func demoGateway(cfg *config.Config) *backend.Gateway {
	return backend.New(cfg)
}

func newTestSessionService() *SessionService {
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	return NewSessionService(demoGateway(cfg), cfg)
}

func TestDemoCredentialsAlwaysSignIn(t *testing.T) {
	svc := newTestSessionService()

	session, err := svc.SignIn(context.Background(), &SignInRequest{
		Email:    DemoEmail,
		Password: DemoPassword,
	})

	assert.NoError(t, err)
	assert.Equal(t, DemoEmail, session.User.Email)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, 3600, session.ExpiresIn)

	current := svc.Current()
	assert.NotNil(t, current)
	assert.Equal(t, DemoEmail, current.Email)
}

func TestSignInUnconfiguredRejectsOtherCredentials(t *testing.T) {
	svc := newTestSessionService()

	_, err := svc.SignIn(context.Background(), &SignInRequest{
		Email:    "someone@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.True(t, strings.Contains(err.Error(), DemoEmail))
	assert.Nil(t, svc.Current())
}

func TestSignInValidation(t *testing.T) {
	svc := newTestSessionService()

	_, err := svc.SignIn(context.Background(), &SignInRequest{
		Email:    "not-an-email",
		Password: "whatever",
	})

	assert.Error(t, err)
	assert.Nil(t, svc.Current())
}

func TestSignOutClearsSession(t *testing.T) {
	svc := newTestSessionService()

	_, err := svc.SignIn(context.Background(), &SignInRequest{
		Email:    DemoEmail,
		Password: DemoPassword,
	})
	assert.NoError(t, err)
	assert.NotNil(t, svc.Current())

	svc.SignOut(context.Background())
	assert.Nil(t, svc.Current())

	// Repeated sign-out stays a no-op
	svc.SignOut(context.Background())
	assert.Nil(t, svc.Current())
}

func TestSubscribeReceivesTransitions(t *testing.T) {
	svc := newTestSessionService()

	var events []*Identity
	unsubscribe := svc.Subscribe(func(identity *Identity) {
		events = append(events, identity)
	})

	_, err := svc.SignIn(context.Background(), &SignInRequest{
		Email:    DemoEmail,
		Password: DemoPassword,
	})
	assert.NoError(t, err)
	svc.SignOut(context.Background())

	assert.Len(t, events, 2)
	assert.NotNil(t, events[0])
	assert.Equal(t, DemoEmail, events[0].Email)
	assert.Nil(t, events[1])

	unsubscribe()

	_, err = svc.SignIn(context.Background(), &SignInRequest{
		Email:    DemoEmail,
		Password: DemoPassword,
	})
	assert.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestMultipleSubscribersNotifiedIndependently(t *testing.T) {
	svc := newTestSessionService()

	var first, second []*Identity
	unsubscribeFirst := svc.Subscribe(func(identity *Identity) {
		first = append(first, identity)
	})
	unsubscribeSecond := svc.Subscribe(func(identity *Identity) {
		second = append(second, identity)
	})
	defer unsubscribeSecond()

	_, err := svc.SignIn(context.Background(), &SignInRequest{
		Email:    DemoEmail,
		Password: DemoPassword,
	})
	assert.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Len(t, second, 1)

	unsubscribeFirst()

	svc.SignOut(context.Background())
	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
	assert.Nil(t, second[1])
}

func TestSignOutWhileSignedOutDoesNotNotify(t *testing.T) {
	svc := newTestSessionService()

	notified := 0
	unsubscribe := svc.Subscribe(func(identity *Identity) {
		notified++
	})
	defer unsubscribe()

	svc.SignOut(context.Background())
	assert.Equal(t, 0, notified)
}

func TestSignUpDemoDoesNotChangeSession(t *testing.T) {
	svc := newTestSessionService()

	identity, err := svc.SignUp(context.Background(), &SignUpRequest{
		Email:    "newadmin@example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "newadmin@example.com", identity.Email)
	assert.True(t, strings.HasPrefix(identity.ID, "demo-user-"), fmt.Sprintf("unexpected id %s", identity.ID))

	// Registration never signs the caller in
	assert.Nil(t, svc.Current())
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	svc := newTestSessionService()

	_, err := svc.SignUp(context.Background(), &SignUpRequest{
		Email:    "newadmin@example.com",
		Password: "short",
	})

	assert.Error(t, err)
}

func TestCurrentReturnsCopy(t *testing.T) {
	svc := newTestSessionService()

	_, err := svc.SignIn(context.Background(), &SignInRequest{
		Email:    DemoEmail,
		Password: DemoPassword,
	})
	assert.NoError(t, err)

	first := svc.Current()
	first.Email = "mutated@example.com"

	second := svc.Current()
	assert.Equal(t, DemoEmail, second.Email)
}

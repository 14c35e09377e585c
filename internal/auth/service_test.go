package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/sistemaflotilla/flotilla-backend/pkg/auth"
	"github.com/sistemaflotilla/flotilla-backend/pkg/config"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
)

var fixedNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

type stubSessions struct {
	created []string
	revoked []string
}

func (s *stubSessions) Create(_ context.Context, accessID, _ string) error {
	s.created = append(s.created, accessID)
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

type stubLimiter struct {
	denied map[string]bool
	seen   []string
}

func (l *stubLimiter) FixedWindowAllow(_ context.Context, scope string, _ int64, _ time.Duration) (bool, int64, error) {
	l.seen = append(l.seen, scope)
	if l.denied[scope] {
		return false, 0, nil
	}
	return true, 1, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "flotilla-backend",
		ExpirationMinutes: 480,
	}
}

func newTestService(t *testing.T, sessions *stubSessions, limiter *stubLimiter) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Auth: config.AuthConfig{
			User:          "admin",
			PlainPassword: "flotilla2026",
		},
		JWT: testJWTConfig(),
		RateLimit: config.AuthRateLimitConfig{
			LoginWindow:    time.Minute,
			LoginUserLimit: 5,
			LoginIPLimit:   20,
		},
		Sessions: sessions,
		Limiter:  limiter,
		Now:      func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return svc
}

func TestLogin(t *testing.T) {
	sessions := &stubSessions{}
	limiter := &stubLimiter{}
	svc := newTestService(t, sessions, limiter)

	dto, err := svc.Login(context.Background(), LoginInput{Usuario: "admin", Password: "flotilla2026"}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "admin", dto.Usuario)
	assert.Equal(t, "Bearer", dto.TipoToken)
	assert.Equal(t, int64(480*60), dto.ExpiraEn)
	require.Len(t, sessions.created, 1)

	// the minted token carries the session id as jti
	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), dto.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Usuario)
	assert.Equal(t, sessions.created[0], claims.ID)

	// both user and ip scopes were consulted
	assert.Contains(t, limiter.seen, "login:user:admin")
	assert.Contains(t, limiter.seen, "login:ip:10.0.0.1")
}

func TestLoginInvalidCredentials(t *testing.T) {
	sessions := &stubSessions{}
	svc := newTestService(t, sessions, &stubLimiter{})
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginInput{Usuario: "admin", Password: "wrong"}, "")
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	_, err = svc.Login(ctx, LoginInput{Usuario: "someone", Password: "flotilla2026"}, "")
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	assert.Empty(t, sessions.created)
}

func TestLoginMissingFields(t *testing.T) {
	svc := newTestService(t, &stubSessions{}, &stubLimiter{})

	_, err := svc.Login(context.Background(), LoginInput{Usuario: "  ", Password: ""}, "")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestLoginRateLimited(t *testing.T) {
	limiter := &stubLimiter{denied: map[string]bool{"login:user:admin": true}}
	svc := newTestService(t, &stubSessions{}, limiter)

	_, err := svc.Login(context.Background(), LoginInput{Usuario: "admin", Password: "flotilla2026"}, "10.0.0.1")
	assert.Equal(t, pkgerrors.CodeRateLimit, pkgerrors.As(err).Code())

	limiter = &stubLimiter{denied: map[string]bool{"login:ip:10.0.0.1": true}}
	svc = newTestService(t, &stubSessions{}, limiter)

	_, err = svc.Login(context.Background(), LoginInput{Usuario: "admin", Password: "flotilla2026"}, "10.0.0.1")
	assert.Equal(t, pkgerrors.CodeRateLimit, pkgerrors.As(err).Code())
}

func TestLogout(t *testing.T) {
	sessions := &stubSessions{}
	svc := newTestService(t, sessions, &stubLimiter{})
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, "some-jti"))
	assert.Equal(t, []string{"some-jti"}, sessions.revoked)

	err := svc.Logout(ctx, "  ")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestHashedPasswordLogin(t *testing.T) {
	svc, err := NewService(ServiceParams{
		Auth: config.AuthConfig{
			User:         "admin",
			PasswordHash: "not-a-valid-argon2-hash",
		},
		JWT:       testJWTConfig(),
		RateLimit: config.AuthRateLimitConfig{LoginWindow: time.Minute, LoginUserLimit: 5, LoginIPLimit: 20},
		Sessions:  &stubSessions{},
		Limiter:   &stubLimiter{},
		Now:       func() time.Time { return fixedNow },
	})
	require.NoError(t, err)

	// a malformed stored hash surfaces as an internal error, never a bypass
	_, err = svc.Login(context.Background(), LoginInput{Usuario: "admin", Password: "whatever"}, "")
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.As(err).Code())
}

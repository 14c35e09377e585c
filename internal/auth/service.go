// Package auth implements the operator gate: a single configured credential
// pair exchanged for a JWT whose session lives in Redis.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/sistemaflotilla/flotilla-backend/pkg/auth"
	"github.com/sistemaflotilla/flotilla-backend/pkg/auth/session"
	"github.com/sistemaflotilla/flotilla-backend/pkg/config"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
	"github.com/sistemaflotilla/flotilla-backend/pkg/security"
)

// LoginInput is the login payload.
type LoginInput struct {
	Usuario  string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginDTO carries the minted token back to the client.
type LoginDTO struct {
	Token     string `json:"token"`
	Usuario   string `json:"usuario"`
	ExpiraEn  int64  `json:"expira_en"`
	TipoToken string `json:"tipo_token"`
}

type sessionManager interface {
	Create(ctx context.Context, accessID, usuario string) error
	Revoke(ctx context.Context, accessID string) error
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	Auth      config.AuthConfig
	JWT       config.JWTConfig
	RateLimit config.AuthRateLimitConfig
	Sessions  sessionManager
	Limiter   rateLimiter
	Now       func() time.Time
}

// Service exposes the operator gate operations.
type Service interface {
	Login(ctx context.Context, input LoginInput, clientIP string) (LoginDTO, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	auth      config.AuthConfig
	jwt       config.JWTConfig
	rateLimit config.AuthRateLimitConfig
	sessions  sessionManager
	limiter   rateLimiter
	now       func() time.Time
}

// NewService builds the auth service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	if params.Limiter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate limiter is required")
	}
	if params.Auth.User == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "auth user is required")
	}
	if params.Auth.PasswordHash == "" && params.Auth.PlainPassword == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "auth password hash or plain password is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		auth:      params.Auth,
		jwt:       params.JWT,
		rateLimit: params.RateLimit,
		sessions:  params.Sessions,
		limiter:   params.Limiter,
		now:       now,
	}, nil
}

// Login verifies the configured credentials and opens a session. Failed and
// successful attempts both count against the fixed-window limits.
func (s *service) Login(ctx context.Context, input LoginInput, clientIP string) (LoginDTO, error) {
	usuario := strings.TrimSpace(input.Usuario)
	if usuario == "" || input.Password == "" {
		return LoginDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "usuario and password are required")
	}

	if err := s.allowAttempt(ctx, usuario, clientIP); err != nil {
		return LoginDTO{}, err
	}

	userOK := subtle.ConstantTimeCompare([]byte(usuario), []byte(s.auth.User)) == 1
	passwordOK, err := s.verifyPassword(input.Password)
	if err != nil {
		return LoginDTO{}, err
	}
	if !userOK || !passwordOK {
		return LoginDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		Usuario: usuario,
		JTI:     accessID,
	})
	if err != nil {
		return LoginDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}
	if err := s.sessions.Create(ctx, accessID, usuario); err != nil {
		return LoginDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing session")
	}

	return LoginDTO{
		Token:     token,
		Usuario:   usuario,
		ExpiraEn:  int64(s.jwt.Expiration().Seconds()),
		TipoToken: "Bearer",
	}, nil
}

// Logout revokes the session tied to the token's jti.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoking session")
	}
	return nil
}

func (s *service) allowAttempt(ctx context.Context, usuario, clientIP string) error {
	allowed, _, err := s.limiter.FixedWindowAllow(ctx, "login:user:"+usuario, int64(s.rateLimit.LoginUserLimit), s.rateLimit.LoginWindow)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking login rate limit")
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, retry later")
	}
	if clientIP != "" {
		allowed, _, err = s.limiter.FixedWindowAllow(ctx, "login:ip:"+clientIP, int64(s.rateLimit.LoginIPLimit), s.rateLimit.LoginWindow)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking login rate limit")
		}
		if !allowed {
			return pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, retry later")
		}
	}
	return nil
}

func (s *service) verifyPassword(password string) (bool, error) {
	if s.auth.PasswordHash != "" {
		ok, err := security.VerifyPassword(password, s.auth.PasswordHash)
		if err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("verifying credentials for %s", s.auth.User))
		}
		return ok, nil
	}
	return security.VerifyPlain(password, s.auth.PlainPassword), nil
}

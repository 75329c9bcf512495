package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/auth"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/config"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/repository"
	apperrors "github.com/Nikhilkrishnapk/complaint-hub/pkg/util"
)

// AuthService coordinates sign-up, sign-in and sign-out flows.
type AuthService struct {
	credentials repository.CredentialRepository
	profiles    repository.ProfileRepository
	revoker     auth.Revoker
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	now         func() time.Time
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	CredentialRepo repository.CredentialRepository
	ProfileRepo    repository.ProfileRepository
	Revoker        auth.Revoker
}

// AuthResult is returned by successful sign-up and sign-in.
type AuthResult struct {
	Profile *domain.Profile
	Token   string
	Session domain.Session
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		credentials: deps.CredentialRepo,
		profiles:    deps.ProfileRepo,
		revoker:     deps.Revoker,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		bcryptCost:  cfg.Auth.BcryptCost,
		now:         time.Now,
	}
}

// SignUp creates a credential and a student profile, then opens a session.
// Admin profiles are never created through this path.
func (s *AuthService) SignUp(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	cred := &domain.Credential{
		Email:        normalizeEmail(email),
		PasswordHash: hash,
	}
	profile := &domain.Profile{
		FullName: strings.TrimSpace(fullName),
		Role:     domain.RoleStudent,
	}
	if err := s.credentials.CreateAccount(ctx, cred, profile); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": cred.Email})
		}
		return nil, err
	}
	return s.openSession(profile)
}

// Login authenticates an account by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	cred, err := s.credentials.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := auth.ComparePassword(cred.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	profile, err := s.profiles.GetByID(ctx, cred.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewProfileNotFound()
		}
		return nil, err
	}
	return s.openSession(profile)
}

// Logout revokes the session until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, session domain.Session) error {
	if s.revoker == nil {
		return nil
	}
	return s.revoker.Revoke(ctx, session.TokenID, session.ExpiresAt.Sub(s.now()))
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) openSession(profile *domain.Profile) (*AuthResult, error) {
	token, session, err := s.tokenMgr.GenerateToken(profile.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{Profile: profile, Token: token, Session: session}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

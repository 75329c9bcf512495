package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/repository"
	apperrors "github.com/Nikhilkrishnapk/complaint-hub/pkg/util"
)

const principalKey = "auth_principal"

// errNoToken marks a request that carried no bearer token at all.
var errNoToken = errors.New("no bearer token")

// Principal represents the authenticated caller.
type Principal struct {
	Session domain.Session
	Profile *domain.Profile
}

// IsAdmin reports whether the caller holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Profile.IsAdmin()
}

// SessionMiddleware validates bearer tokens and loads the caller's profile.
type SessionMiddleware struct {
	tokens   *TokenManager
	revoker  Revoker
	profiles repository.ProfileRepository
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, revoker Revoker, profiles repository.ProfileRepository) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, revoker: revoker, profiles: profiles}
}

// Handle enforces an active session for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	principal, err := m.resolve(c)
	if err != nil {
		return err
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// Optional attaches the principal when a valid session exists and never rejects.
func (m *SessionMiddleware) Optional(c *fiber.Ctx) error {
	if principal, err := m.resolve(c); err == nil {
		c.Locals(principalKey, principal)
	}
	return c.Next()
}

func (m *SessionMiddleware) resolve(c *fiber.Ctx) (*Principal, error) {
	token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		if errors.Is(err, errNoToken) {
			return nil, apperrors.NewUnauthorized("missing session")
		}
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	session, err := m.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid session")
	}

	ctx := c.UserContext()
	if m.revoker != nil {
		revoked, err := m.revoker.IsRevoked(ctx, session.TokenID)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		if revoked {
			return nil, apperrors.NewUnauthorized("session signed out")
		}
	}

	profile, err := m.profiles.GetByID(ctx, session.ProfileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewProfileNotFound()
		}
		return nil, apperrors.MapError(err)
	}

	return &Principal{Session: session, Profile: profile}, nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errNoToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("malformed authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal != nil
}

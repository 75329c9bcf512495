package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
	apperrors "github.com/Nikhilkrishnapk/complaint-hub/pkg/util"
)

// RequireRole ensures the principal's profile holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Profile == nil {
			return apperrors.NewUnauthorized("missing session")
		}
		if _, exists := allowedSet[principal.Profile.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller is an administrator.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}

// RequireStudent ensures the caller is a student.
func RequireStudent() fiber.Handler {
	return RequireRole(domain.RoleStudent)
}

package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/repository"
	apperrors "github.com/spec-kit/project-board/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Member *domain.Member
}

// Role returns the caller's access level.
func (p *Principal) Role() domain.Role {
	if p == nil || p.Member == nil {
		return ""
	}
	return p.Member.Role
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens  *TokenManager
	members repository.MemberRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, members repository.MemberRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, members: members}
}

// Handle enforces authentication for protected routes. The principal is
// loaded fresh from storage so a role change takes effect on the next
// request, not at the next login.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	member, err := m.members.GetByID(c.Context(), claims.MemberID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("member not found")
		}
		return apperrors.MapError(err)
	}
	if member.Status != domain.MemberStatusActive {
		return apperrors.NewUnauthorized("member not activated")
	}

	c.Locals(principalKey, &Principal{Member: member})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

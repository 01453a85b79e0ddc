package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edulearn-platform/learning-service/internal/auth"
	"github.com/edulearn-platform/learning-service/internal/models"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// TokenAuthMiddleware authenticates requests with a bearer JWT and gates
// route groups on the caller's role.
type TokenAuthMiddleware struct {
	tokens *auth.TokenService
}

func NewTokenAuthMiddleware(tokens *auth.TokenService) *TokenAuthMiddleware {
	return &TokenAuthMiddleware{tokens: tokens}
}

// AuthMiddleware validates the Authorization header and stores the token
// identity in the request context. Every failure is the same 401; the
// response never says whether the token was missing, expired or garbage
// beyond the message text.
func (tam *TokenAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header missing")
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		identity, err := tam.tokens.Validate(tokenParts[1])
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextUserRole, identity.Role)
		c.Next()
	}
}

// RequireRoleMiddleware allows only the listed roles through. Membership
// is literal: an Admin is rejected from a Teacher-only route unless Admin
// is listed too.
func (tam *TokenAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextUserRole)
		if !exists {
			abortForbidden(c, "user role not found in context")
			return
		}

		role, ok := userRole.(models.UserRole)
		if !ok {
			abortForbidden(c, "invalid user role format")
			return
		}

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		abortForbidden(c, "insufficient permissions")
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: msg})
}

func abortForbidden(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: msg})
}

// currentUserID returns the authenticated caller's id, answering 401 when
// the auth middleware did not run.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		abortUnauthorized(c, "user not authenticated")
		return "", false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		abortUnauthorized(c, "user not authenticated")
		return "", false
	}
	return id, true
}

func currentUserRole(c *gin.Context) (models.UserRole, bool) {
	userRole, exists := c.Get(ContextUserRole)
	if !exists {
		return "", false
	}
	role, ok := userRole.(models.UserRole)
	return role, ok
}

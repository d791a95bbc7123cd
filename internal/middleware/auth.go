package middleware

import (
	"errors"
	"strings"

	"crm_backend/internal/auth"
	"crm_backend/internal/logger"
	"crm_backend/internal/models"
	"crm_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AccessTokenCookie is where browser clients keep the access token.
const AccessTokenCookie = "accessToken"

// extractToken reads the access token, preferring the cookie and falling
// back to the Authorization Bearer header. One strategy for all routes.
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// AuthMiddleware verifies the access token and stores the claims in the
// request context.
func AuthMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.ErrTokenMissing)
			return
		}

		claims, err := tokens.ParseAccessToken(tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				apperrors.HandleError(c, apperrors.ErrTokenExpired)
			} else {
				apperrors.HandleError(c, apperrors.ErrInvalidToken)
			}
			return
		}

		c.Set("userID", claims.UserID.String())
		c.Set("role", string(claims.Role))
		c.Set("isVerified", claims.IsVerified)

		// Propagate the user ID into the slog context fields.
		ctx := logger.WithUserID(c.Request.Context(), claims.UserID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles allows only the listed roles past.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}

		roleStr, ok := roleVal.(string)
		if !ok || !roleSet[models.UserRole(roleStr)] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}

		c.Next()
	}
}

// RequireVerified blocks unapproved accounts. Admins bypass the check so
// the seeded administrator can always manage approvals.
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		if roleVal, exists := c.Get("role"); exists {
			if roleStr, ok := roleVal.(string); ok && roleStr == string(models.UserRoleAdmin) {
				c.Next()
				return
			}
		}

		verifiedVal, exists := c.Get("isVerified")
		if !exists {
			apperrors.HandleError(c, apperrors.ErrEmailNotVerified)
			return
		}

		verified, ok := verifiedVal.(bool)
		if !ok || !verified {
			apperrors.HandleError(c, apperrors.ErrEmailNotVerified)
			return
		}

		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the gin context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

// GetRole returns the authenticated user's role from the gin context.
func GetRole(c *gin.Context) string {
	roleVal, exists := c.Get("role")
	if !exists {
		return ""
	}

	role, ok := roleVal.(string)
	if !ok {
		return ""
	}

	return role
}

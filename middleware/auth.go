package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
	"github.com/Heritage-Craft/artisan-marketplace-backend/utils"
)

const (
	actingRoleKey = "actingRole"
	userIDKey     = "userID"
)

// OptionalAuth resolves the acting role from a token in the auth_token cookie
// or the Authorization header. Requests without a token act as guests; a
// token that fails validation is rejected.
func OptionalAuth(tokens utils.TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("auth_token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.Set(actingRoleKey, models.RoleGuest)
				c.Next()
				return
			}

			var err error
			token, err = utils.ExtractTokenFromHeader(authHeader)
			if err != nil {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid authorization header format"))
				c.Abort()
				return
			}
		}

		claims, err := utils.ValidateJWT(tokens, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(actingRoleKey, claims.Role)
		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// GetActingRole returns the role OptionalAuth resolved, or guest.
func GetActingRole(c *gin.Context) models.Role {
	if v, exists := c.Get(actingRoleKey); exists {
		if role, ok := v.(models.Role); ok && role.Valid() {
			return role
		}
	}
	return models.RoleGuest
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a Gin middleware handler that validates bearer
// tokens through the configured TokenValidator.
func AuthMiddleware(validator clients.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		// The token service historically accepted raw tokens as well as "Bearer <token>".
		tokenString := authHeader
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
			if strings.ToLower(parts[0]) != "bearer" {
				logger.Warn("Authorization header format invalid")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
				return
			}
			tokenString = strings.TrimSpace(parts[1])
		}

		userID, err := validator.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthorized) {
				logger.Warn("Invalid token", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Invalid or expired token"})
				return
			}
			logger.Error("Token validation failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Error validating token"})
			return
		}

		ctx := WithAuthenticatedUser(c.Request.Context(), userID, tokenString)
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", userID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin only lets through users listed in adminUserIDs. It must run after AuthMiddleware.
func RequireAdmin(adminUserIDs []string) gin.HandlerFunc {
	admins := make(map[string]struct{}, len(adminUserIDs))
	for _, id := range adminUserIDs {
		if id = strings.TrimSpace(id); id != "" {
			admins[id] = struct{}{}
		}
	}
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if _, isAdmin := admins[userID]; !isAdmin {
			GetLoggerFromCtx(c.Request.Context()).Warn("Admin rights required", slog.String("user_id", userID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unauthorized - Admin rights are required"})
			return
		}
		c.Next()
	}
}

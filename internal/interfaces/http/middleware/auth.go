package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lunaspay/internal/infrastructure/auth"
	"lunaspay/internal/shared/constants"
	"lunaspay/internal/shared/logger"
	"lunaspay/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireWallet authenticates the caller and puts the wallet reference in
// the request context.
func (m *AuthMiddleware) RequireWallet() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyWalletRef, claims.WalletRef)

		c.Next()
	}
}

// WalletRef returns the authenticated wallet reference from the context.
func WalletRef(c *gin.Context) string {
	return c.GetString(constants.ContextKeyWalletRef)
}

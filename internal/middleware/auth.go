package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/service/auth"
	"github.com/marceelkacz03/lola-crm/pkg/httputil"
)

const ContextClaims = "claims"

type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token and stores the claims in context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorBody{Error: "missing authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorBody{Error: "invalid authorization format"})
			return
		}

		claims, err := m.authService.VerifyToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorBody{Error: "invalid token"})
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireRole gates a route group on the STAFF < MANAGER < BOARD < ADMIN
// hierarchy. Must run after Authenticate.
func (m *AuthMiddleware) RequireRole(required model.AppRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorBody{Error: "unauthorized"})
			return
		}

		if !model.HasAtLeastRole(claims.Role, required) {
			c.AbortWithStatusJSON(http.StatusForbidden, httputil.ErrorBody{Error: "insufficient role"})
			return
		}

		c.Next()
	}
}

// ClaimsFromContext returns the token claims set by Authenticate, or nil.
func ClaimsFromContext(c *gin.Context) *model.TokenClaims {
	value, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, ok := value.(*model.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}

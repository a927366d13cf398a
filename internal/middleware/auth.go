package middleware

import (
	"strings"

	"fleetflow-service/internal/pkg/response"
	"fleetflow-service/internal/pkg/token"
	"fleetflow-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

const claimsKey = "operator_claims"

// AuthMiddleware rejects requests without a valid bearer token and a live
// session behind it.
func AuthMiddleware(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Unauthorized(c, "missing bearer token")
			return
		}

		claims, err := authService.Validate(c.Request.Context(), tokenString)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// MustGetClaims returns the authenticated operator claims. Only valid behind
// AuthMiddleware.
func MustGetClaims(c *gin.Context) *token.Claims {
	claims, _ := c.Get(claimsKey)
	return claims.(*token.Claims)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// websocket clients cannot set headers from the browser
	return c.Query("token")
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"edupanel/pkg/utils"
)

func JWTAuthMiddleware(issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := issuer.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		principal, err := utils.PrincipalFromClaims(claims)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		utils.SetPrincipal(c, principal)
		c.Next()
	}
}

// RoleMiddleware admits callers holding any of the given roles. Must run after JWTAuthMiddleware.
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := utils.GetPrincipal(c)
		if !ok || !principal.HasRole(roles...) {
			utils.HandleServiceError(c, utils.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

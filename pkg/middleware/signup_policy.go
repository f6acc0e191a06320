package middleware

import (
	"github.com/gin-gonic/gin"

	"edupanel/pkg/utils"
)

// SignupPolicy guards client self-registration. With public=true the route is open;
// otherwise the caller must be authenticated and hold one of the roles.
func SignupPolicy(public bool, issuer *utils.TokenIssuer, roles ...string) []gin.HandlerFunc {
	if public {
		return nil
	}
	return []gin.HandlerFunc{JWTAuthMiddleware(issuer), RoleMiddleware(roles...)}
}

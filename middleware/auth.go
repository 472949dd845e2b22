package middleware

import (
	"strings"

	"github.com/pixelnest/studio-server/utils"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates a route to the admin session.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(utils.RoleAdmin)
}

// RequirePortal gates a route to an authenticated portal customer.
func RequirePortal() gin.HandlerFunc {
	return requireRole(utils.RoleCustomer)
}

// RequireSession accepts any authenticated session regardless of role. The
// session validation endpoint uses it so both the admin app and the portal
// can check token freshness.
func RequireSession() gin.HandlerFunc {
	return requireRole("")
}

// requireRole verifies the bearer token and stores the resolved Session in
// the request context. Downstream code reads it via utils.GetSession, so
// nothing runs against a not-yet-determined auth state. An empty role
// accepts any authenticated session.
func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortWith(c, utils.CreateUnauthorizedError("missing bearer token"))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Logger.Info().Err(err).Str("path", c.Request.URL.Path).Msg("token rejected")
			abortWith(c, utils.CreateUnauthorizedError("invalid token"))
			return
		}

		session, err := utils.SessionFromClaims(claims)
		if err != nil {
			abortWith(c, utils.CreateUnauthorizedError("invalid token: "+err.Error()))
			return
		}

		if role != "" && session.Role != role {
			abortWith(c, utils.CreateForbiddenError())
			return
		}

		c.Set("session", session)
		c.Next()
	}
}

// abortWith writes the ApiError and stops the chain.
func abortWith(c *gin.Context, err *utils.ApiError) {
	response := gin.H{"success": false, "error": err.Message}
	if err.ErrorCode != "" {
		response["code"] = err.ErrorCode
	}
	c.AbortWithStatusJSON(err.StatusCode, response)
}

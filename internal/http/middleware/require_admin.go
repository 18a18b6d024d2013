package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dchamindu826/norcal-dubs/internal/auth"
	"github.com/dchamindu826/norcal-dubs/internal/shared/apperr"
)

const CtxKeyAdmin = "admin_username"

// RequireAdmin guards the back-office routes with the bearer token issued
// at login.
func RequireAdmin(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		raw = strings.TrimPrefix(raw, "Bearer ")
		if raw == "" {
			Fail(c, apperr.UnauthorizedErr("Login required."))
			return
		}
		username, err := tokens.Verify(raw)
		if err != nil {
			Fail(c, apperr.UnauthorizedErr("Session expired, please log in again."))
			return
		}
		c.Set(CtxKeyAdmin, username)
		c.Next()
	}
}

func CurrentAdmin(c *gin.Context) (string, bool) {
	if v, ok := c.Get(CtxKeyAdmin); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

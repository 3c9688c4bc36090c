package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	// CookieName is the cookie carrying the session token.
	CookieName = "token"
	// ContextKey is the gin context key holding verified Claims.
	ContextKey = "user"
)

// RequireToken rejects requests without a valid session cookie with 401 and
// stores the verified claims on the context for downstream handlers.
func RequireToken(tm *TokenManager, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}

		claims, err := tm.Validate(token)
		if err != nil {
			log.WithError(err).WithField("path", c.Request.URL.Path).Debug("auth: token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}

		c.Set(ContextKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by RequireToken.
func ClaimsFromContext(c *gin.Context) (Claims, bool) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(Claims)
	return claims, ok
}

// SetTokenCookie writes the session cookie. It is HttpOnly and lives as
// long as the token.
func SetTokenCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, maxAge, "/", "", secure, true)
}

// ClearTokenCookie expires the session cookie on the client.
func ClearTokenCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"virtual-tryon-backend/internal/config"
)

const (
	loginPath      = "/auth/login"
	homePath       = "/"
	authPathPrefix = "/auth"
)

// SessionGate is the single enforcement point for page-level session
// redirects: unauthenticated browser requests to any non-auth path go to the
// login page, authenticated requests to auth pages go home. API, webhook and
// health routes speak JSON and are exempt.
func SessionGate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isExemptPath(path) {
			c.Next()
			return
		}

		authed := hasValidSession(c, cfg)
		isAuthPath := strings.HasPrefix(path, authPathPrefix)

		if !authed && !isAuthPath {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		if authed && isAuthPath {
			c.Redirect(http.StatusFound, homePath)
			c.Abort()
			return
		}

		c.Next()
	}
}

func isExemptPath(path string) bool {
	return strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/webhooks/") ||
		path == "/health"
}

func hasValidSession(c *gin.Context, cfg *config.Config) bool {
	cookie, err := c.Cookie(cfg.AuthCookieName)
	if err != nil || cookie == "" {
		return false
	}

	// Without a JWT secret the gate can only check cookie presence; the API
	// middleware remains the authoritative check for data access.
	if cfg.SupabaseJWTSecret == "" {
		return true
	}

	token, err := jwt.Parse(cookie, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.SupabaseJWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	return err == nil && token.Valid
}

package middleware

import (
	"net/http"
	"time"

	"clubhouse/internal/model"
	"clubhouse/internal/service"
	"clubhouse/internal/view"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "clubhouse.sid"
	sessionContextKey = "session"
)

// SessionContext is the identity resolved once per request. User is nil for
// anonymous requests.
type SessionContext struct {
	Token string
	User  *model.User
}

// Authenticated reports whether a user was resolved
func (s SessionContext) Authenticated() bool {
	return s.User != nil
}

// SessionMiddleware resolves the session cookie into a SessionContext
func SessionMiddleware(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookieName)

		user, err := auth.ResolveSession(c.Request.Context(), token)
		if err != nil {
			RequestLogger(c).WithError(err).Error("failed to resolve session")
			view.RenderError(c, http.StatusInternalServerError)
			c.Abort()
			return
		}

		c.Set(sessionContextKey, SessionContext{Token: token, User: user})
		c.Next()
	}
}

// CurrentSession returns the SessionContext set by SessionMiddleware, or an
// anonymous one when the middleware did not run.
func CurrentSession(c *gin.Context) SessionContext {
	if v, ok := c.Get(sessionContextKey); ok {
		if s, ok := v.(SessionContext); ok {
			return s
		}
	}
	return SessionContext{}
}

// RequireSession redirects anonymous requests to the login page
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Authenticated() {
			c.Redirect(http.StatusSeeOther, "/logIn")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetSessionCookie hands the session token to the browser
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", false, true)
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

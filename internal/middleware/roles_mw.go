package middleware

import (
	"net/http"

	"clubhouse/internal/model"
	"clubhouse/internal/view"

	"github.com/gin-gonic/gin"
)

// MembershipMiddleware only lets through users whose tier is one of allowed.
// Anonymous requests are sent to the login page.
func MembershipMiddleware(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentSession(c).User
		if user == nil {
			c.Redirect(http.StatusSeeOther, "/logIn")
			c.Abort()
			return
		}

		isAllowed := false
		for _, tier := range allowed {
			if user.MembershipStatus == tier {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			view.RenderError(c, http.StatusForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminMiddleware checks if the user is an Admin
func AdminMiddleware() gin.HandlerFunc {
	return MembershipMiddleware(model.MembershipAdmin)
}

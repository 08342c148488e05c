package handler

import (
	"net/http"
	"strconv"

	"clubhouse/internal/middleware"
	"clubhouse/internal/view"

	"github.com/gin-gonic/gin"
)

// render adds the current user to data so the layout can show the right links.
func render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = middleware.CurrentSession(c).User
	c.HTML(code, name, data)
}

func serverError(c *gin.Context, err error, msg string) {
	middleware.RequestLogger(c).WithError(err).Error(msg)
	view.RenderError(c, http.StatusInternalServerError)
}

// messageID parses the :id path parameter. Anything that is not a positive
// integer cannot name a message.
func messageID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

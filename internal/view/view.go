// Package view holds the server-rendered HTML templates.
package view

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"clubhouse/internal/validation"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Load parses every embedded template
func Load() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"formatTime": func(t time.Time) string { return t.Format("Jan 2, 2006 15:04") },
	}).ParseFS(templateFS, "templates/*.html")
}

// Form builds the data for re-rendering a form with its errors and the
// submitted inputs. errs may be nil.
func Form(errs *validation.Errors, inputs any) gin.H {
	if errs == nil {
		errs = &validation.Errors{}
	}
	return gin.H{"Errors": errs, "Inputs": inputs}
}

// RenderError renders the generic failure page without internal detail
func RenderError(c *gin.Context, code int) {
	c.HTML(code, "error", gin.H{
		"Status":     code,
		"StatusText": http.StatusText(code),
	})
}

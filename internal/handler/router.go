package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"clubhouse/internal/middleware"
	"clubhouse/internal/service"
	"clubhouse/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps are the explicitly injected collaborators of the HTTP surface
type RouterDeps struct {
	Auth           service.AuthService
	Messages       service.MessageService
	Membership     service.MembershipService
	DB             Pinger
	Log            logrus.FieldLogger
	SessionTTL     time.Duration
	RestrictDelete bool
}

// NewRouter builds the gin engine with every route and middleware installed
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	templates, err := view.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.Use(middleware.LoggerMiddleware(deps.Log), middleware.Recovery())

	router.GET("/health", func(c *gin.Context) {
		if err := deps.DB.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	site := router.Group("/", middleware.SessionMiddleware(deps.Auth))
	requireSession := middleware.RequireSession()

	var deleteGuards []gin.HandlerFunc
	if deps.RestrictDelete {
		deleteGuards = append(deleteGuards, middleware.AdminMiddleware())
	}

	NewAuthHandler(deps.Auth, deps.SessionTTL).RegisterAuthRoutes(site)
	NewMessageHandler(deps.Messages, deps.RestrictDelete).RegisterMessageRoutes(site, requireSession, deleteGuards...)
	NewMembershipHandler(deps.Membership).RegisterMembershipRoutes(site, requireSession)

	router.NoRoute(func(c *gin.Context) {
		view.RenderError(c, http.StatusNotFound)
	})

	return router, nil
}

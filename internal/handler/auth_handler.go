package handler

import (
	"errors"
	"net/http"
	"time"

	"clubhouse/internal/middleware"
	"clubhouse/internal/model"
	"clubhouse/internal/service"
	"clubhouse/internal/validation"
	"clubhouse/internal/view"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles the landing page, sign-up, login and logout
type AuthHandler struct {
	service    service.AuthService
	sessionTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: s, sessionTTL: sessionTTL}
}

func (h *AuthHandler) Index(c *gin.Context) {
	render(c, http.StatusOK, "index", nil)
}

func (h *AuthHandler) SignUpForm(c *gin.Context) {
	render(c, http.StatusOK, "signUp", view.Form(nil, model.SignUpInput{}))
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var in model.SignUpInput
	if err := c.ShouldBind(&in); err != nil {
		render(c, http.StatusBadRequest, "signUp", view.Form(validation.Single("form", "Invalid submission"), model.SignUpInput{}))
		return
	}

	_, err := h.service.RegisterUser(c.Request.Context(), in)
	if err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			// Never echo passwords back into the page.
			in.Password, in.ConfirmPassword = "", ""
			render(c, http.StatusBadRequest, "signUp", view.Form(verrs, in))
			return
		}
		serverError(c, err, "failed to register user")
		return
	}

	c.Redirect(http.StatusSeeOther, "/logIn")
}

func (h *AuthHandler) LogInForm(c *gin.Context) {
	render(c, http.StatusOK, "logIn", view.Form(nil, model.LogInInput{}))
}

func (h *AuthHandler) LogIn(c *gin.Context) {
	ctx := c.Request.Context()
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.service.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.RequestLogger(c).WithField("reason", err.Error()).Info("login rejected")
			errs := validation.Single("authentication", "Incorrect username or password")
			render(c, http.StatusBadRequest, "logIn", view.Form(errs, model.LogInInput{Username: username}))
			return
		}
		serverError(c, err, "failed to authenticate")
		return
	}

	// Drop any session the browser already had before issuing a new one.
	if old := middleware.CurrentSession(c).Token; old != "" {
		h.service.EndSession(ctx, old)
	}

	token, err := h.service.StartSession(ctx, user)
	if err != nil {
		serverError(c, err, "failed to start session")
		return
	}

	middleware.SetSessionCookie(c, token, h.sessionTTL)
	c.Redirect(http.StatusSeeOther, "/homepage")
}

// LogOut always ends at the landing page, even if the session could not be
// removed from the store.
func (h *AuthHandler) LogOut(c *gin.Context) {
	h.service.EndSession(c.Request.Context(), middleware.CurrentSession(c).Token)
	middleware.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.GET("/signUp", h.SignUpForm)
	r.POST("/signUp", h.SignUp)
	r.GET("/logIn", h.LogInForm)
	r.POST("/logIn", h.LogIn)
	r.GET("/logOut", h.LogOut)
}

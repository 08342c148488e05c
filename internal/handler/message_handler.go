package handler

import (
	"errors"
	"net/http"

	"clubhouse/internal/middleware"
	"clubhouse/internal/model"
	"clubhouse/internal/service"
	"clubhouse/internal/validation"
	"clubhouse/internal/view"

	"github.com/gin-gonic/gin"
)

// MessageHandler handles the homepage, new posts and deletes
type MessageHandler struct {
	service        service.MessageService
	restrictDelete bool
}

// NewMessageHandler creates a new MessageHandler. With restrictDelete the
// delete links are only shown to admins; the route guard is installed by
// RegisterMessageRoutes' caller.
func NewMessageHandler(s service.MessageService, restrictDelete bool) *MessageHandler {
	return &MessageHandler{service: s, restrictDelete: restrictDelete}
}

func (h *MessageHandler) Homepage(c *gin.Context) {
	user := middleware.CurrentSession(c).User

	messages, err := h.service.ListMessagesWithAuthors(c.Request.Context())
	if err != nil {
		serverError(c, err, "failed to list messages")
		return
	}

	render(c, http.StatusOK, "homepage", gin.H{
		"Messages":  messages,
		"CanDelete": !h.restrictDelete || user.MembershipStatus == model.MembershipAdmin,
	})
}

func (h *MessageHandler) CreatePostForm(c *gin.Context) {
	render(c, http.StatusOK, "createPost", view.Form(nil, model.CreateMessageInput{}))
}

func (h *MessageHandler) CreatePost(c *gin.Context) {
	user := middleware.CurrentSession(c).User

	var in model.CreateMessageInput
	if err := c.ShouldBind(&in); err != nil {
		render(c, http.StatusBadRequest, "createPost", view.Form(validation.Single("form", "Invalid submission"), model.CreateMessageInput{}))
		return
	}

	if _, err := h.service.CreateMessage(c.Request.Context(), user.ID, in); err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			render(c, http.StatusBadRequest, "createPost", view.Form(verrs, in))
			return
		}
		serverError(c, err, "failed to create message")
		return
	}

	c.Redirect(http.StatusSeeOther, "/homepage")
}

func (h *MessageHandler) DeleteConfirm(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		view.RenderError(c, http.StatusNotFound)
		return
	}

	message, err := h.service.GetMessage(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			view.RenderError(c, http.StatusNotFound)
			return
		}
		serverError(c, err, "failed to load message")
		return
	}

	render(c, http.StatusOK, "delete", gin.H{"Message": message})
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		view.RenderError(c, http.StatusNotFound)
		return
	}

	if err := h.service.DeleteMessage(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			middleware.RequestLogger(c).WithField("message_id", id).Info("delete of unknown message")
			view.RenderError(c, http.StatusNotFound)
			return
		}
		serverError(c, err, "failed to delete message")
		return
	}

	c.Redirect(http.StatusSeeOther, "/homepage")
}

// RegisterMessageRoutes registers message routes. requireSession guards the
// pages that need an author; deleteGuards, if any, guard the delete routes.
func (h *MessageHandler) RegisterMessageRoutes(r gin.IRoutes, requireSession gin.HandlerFunc, deleteGuards ...gin.HandlerFunc) {
	r.GET("/homepage", requireSession, h.Homepage)
	r.GET("/createPost", requireSession, h.CreatePostForm)
	r.POST("/createPost", requireSession, h.CreatePost)

	r.GET("/:id/delete", chain(deleteGuards, h.DeleteConfirm)...)
	r.POST("/:id/delete", chain(deleteGuards, h.Delete)...)
}

func chain(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	handlers := make([]gin.HandlerFunc, 0, len(guards)+1)
	handlers = append(handlers, guards...)
	return append(handlers, h)
}

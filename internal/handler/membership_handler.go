package handler

import (
	"net/http"

	"clubhouse/internal/middleware"
	"clubhouse/internal/service"

	"github.com/gin-gonic/gin"
)

// MembershipHandler handles the join-the-club passcode form
type MembershipHandler struct {
	service service.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler
func NewMembershipHandler(s service.MembershipService) *MembershipHandler {
	return &MembershipHandler{service: s}
}

func (h *MembershipHandler) JoinClubForm(c *gin.Context) {
	render(c, http.StatusOK, "joinClub", nil)
}

// JoinClub applies the submitted passcode. A wrong passcode is not reported;
// the user just lands on the homepage with the same tier.
func (h *MembershipHandler) JoinClub(c *gin.Context) {
	user := middleware.CurrentSession(c).User

	if _, err := h.service.UpgradeMembership(c.Request.Context(), user.ID, c.PostForm("passcode")); err != nil {
		serverError(c, err, "failed to update membership")
		return
	}

	c.Redirect(http.StatusSeeOther, "/homepage")
}

// RegisterMembershipRoutes registers membership routes
func (h *MembershipHandler) RegisterMembershipRoutes(r gin.IRoutes, requireSession gin.HandlerFunc) {
	r.GET("/joinClub", requireSession, h.JoinClubForm)
	r.POST("/joinClub", requireSession, h.JoinClub)
}

package api

import (
	"net/http"

	"uni-meet/internal/service"

	"github.com/gin-gonic/gin"
)

type ClubHandler struct {
	clubService *service.ClubService
}

func NewClubHandler(clubService *service.ClubService) *ClubHandler {
	return &ClubHandler{
		clubService: clubService,
	}
}

// GET /clubs
func (h *ClubHandler) ListClubs(c *gin.Context) {
	clubs, err := h.clubService.ListClubs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clubs)
}

// GET /clubs/with-following
func (h *ClubHandler) ListClubsWithFollowing(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	clubs, err := h.clubService.ListClubsWithFollowing(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clubs)
}

// GET /clubs/joined
func (h *ClubHandler) ListJoined(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	clubs, err := h.clubService.ListJoined(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clubs)
}

// POST /clubs/:id/follow
func (h *ClubHandler) Follow(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	clubID, ok := getIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.clubService.Follow(c.Request.Context(), userID, clubID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /clubs/:id/follow
func (h *ClubHandler) Unfollow(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	clubID, ok := getIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.clubService.Unfollow(c.Request.Context(), userID, clubID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

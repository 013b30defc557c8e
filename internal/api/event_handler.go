package api

import (
	"fmt"
	"net/http"
	"strings"

	"uni-meet/internal/service"
	"uni-meet/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	eventService *service.EventService
}

func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// GET /events?includeCancelled=
func (h *EventHandler) ListEvents(c *gin.Context) {
	includeCancelled, ok := getBoolQuery(c, "includeCancelled", false)
	if !ok {
		return
	}
	events, err := h.eventService.ListEvents(c.Request.Context(), includeCancelled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, ok := getIDParam(c, "id")
	if !ok {
		return
	}
	event, err := h.eventService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// GET /events/upcoming?includeCancelled=
func (h *EventHandler) Upcoming(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	includeCancelled, ok := getBoolQuery(c, "includeCancelled", false)
	if !ok {
		return
	}
	events, err := h.eventService.Upcoming(c.Request.Context(), userID, includeCancelled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /events/feed?upcomingOnly=&includeCancelled=
func (h *EventHandler) Feed(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	upcomingOnly, ok := getBoolQuery(c, "upcomingOnly", true)
	if !ok {
		return
	}
	includeCancelled, ok := getBoolQuery(c, "includeCancelled", false)
	if !ok {
		return
	}
	events, err := h.eventService.Feed(c.Request.Context(), userID, upcomingOnly, includeCancelled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// POST /events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var in service.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		logger.L.Warn("Failed to bind CreateEvent request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(c.Request.URL.Path, "/"), event.EventID))
	c.JSON(http.StatusCreated, event)
}

// PUT /events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	eventID, ok := getIDParam(c, "id")
	if !ok {
		return
	}

	var in service.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		logger.L.Warn("Failed to bind UpdateEvent request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), userID, eventID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DELETE /events/:id 取消活动, 不删除记录
func (h *EventHandler) CancelEvent(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	eventID, ok := getIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.eventService.CancelEvent(c.Request.Context(), userID, eventID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

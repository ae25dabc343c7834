package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/internal/http/response"
	"github.com/leafline/leafline-backend/internal/pkg/logger"
	"github.com/leafline/leafline-backend/internal/services"
)

type EventHandler struct {
	log    *logger.Logger
	events services.EventService
}

func NewEventHandler(log *logger.Logger, events services.EventService) *EventHandler {
	return &EventHandler{
		log:    log.With("handler", "EventHandler"),
		events: events,
	}
}

type ingestEventsRequest struct {
	UserID string                `json:"user_id" binding:"required"`
	Events []services.EventInput `json:"events" binding:"required"`
}

func (h *EventHandler) IngestEvents(c *gin.Context) {
	var req ingestEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	n, err := h.events.Ingest(c.Request.Context(), nil, userID, req.Events)
	if err != nil {
		h.log.Warn("IngestEvents failed", "error", err, "user_id", userID)
		response.RespondError(c, http.StatusBadRequest, "ingest_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ingested": n})
}

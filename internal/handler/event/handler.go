package event

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/middleware"
	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/service/event"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
	"github.com/marceelkacz03/lola-crm/pkg/httputil"
)

type Handler struct {
	service    *event.Service
	writeGuard gin.HandlerFunc
}

func NewHandler(service *event.Service, writeGuard gin.HandlerFunc) *Handler {
	return &Handler{service: service, writeGuard: writeGuard}
}

// RegisterRoutes keeps reads open to any authenticated user; writes go
// through the guard (MANAGER and up).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.POST("", h.writeGuard, h.CreateEvent)
		events.GET("", h.ListEvents)
		events.GET("/:id", h.GetEvent)
		events.PATCH("/:id", h.writeGuard, h.UpdateEvent)
	}
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	result, err := h.service.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusCreated, result)
}

func (h *Handler) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid event ID", err))
		return
	}

	event, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, event)
}

func (h *Handler) ListEvents(c *gin.Context) {
	var statuses []model.EventStatus
	if status := c.Query("status"); status != "" {
		statuses = append(statuses, model.EventStatus(status))
	}

	// STAFF only sees confirmed events regardless of the requested filter.
	if claims := middleware.ClaimsFromContext(c); claims != nil && !model.HasAtLeastRole(claims.Role, model.RoleManager) {
		statuses = []model.EventStatus{model.EventStatusConfirmed}
	}

	events, err := h.service.ListEvents(c.Request.Context(), statuses...)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, events)
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid event ID", err))
		return
	}

	var req model.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	result, err := h.service.UpdateEvent(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, result)
}

package calendar

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marceelkacz03/lola-crm/internal/calendar"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
	"github.com/marceelkacz03/lola-crm/pkg/httputil"
)

// Handler exposes the raw calendar view and manual bookings that bypass the
// deal pipeline (internal meetings, venue maintenance blocks).
type Handler struct {
	provider   calendar.Provider
	writeGuard gin.HandlerFunc
}

func NewHandler(provider calendar.Provider, writeGuard gin.HandlerFunc) *Handler {
	return &Handler{provider: provider, writeGuard: writeGuard}
}

// RegisterRoutes keeps the list open to any authenticated user; manual
// bookings go through the guard (MANAGER and up).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/calendar/events")
	{
		events.GET("", h.ListEvents)
		events.POST("", h.writeGuard, h.CreateBooking)
	}
}

type createBookingRequest struct {
	Title       string  `json:"title" binding:"required,min=1"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	EventDate   string  `json:"event_date" binding:"required,datetime=2006-01-02"`
	StartTime   *string `json:"start_time" binding:"omitempty,hhmm"`
	EndTime     *string `json:"end_time" binding:"omitempty,hhmm"`
}

func (h *Handler) ListEvents(c *gin.Context) {
	if !h.provider.Enabled() {
		httputil.RespondWithError(c, apperrors.BadRequest("calendar sync is disabled", nil))
		return
	}

	from := time.Now()
	to := from.AddDate(0, 0, 30)
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid from date", err))
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid to date", err))
			return
		}
		to = parsed
	}

	maxResults := int64(50)
	if raw := c.Query("maxResults"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid maxResults", err))
			return
		}
		maxResults = parsed
	}

	entries, err := h.provider.List(c.Request.Context(), from, to, maxResults)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, entries)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	if !h.provider.Enabled() {
		httputil.RespondWithError(c, apperrors.BadRequest("calendar sync is disabled", nil))
		return
	}

	start := "10:00"
	if req.StartTime != nil && *req.StartTime != "" {
		start = *req.StartTime
	}
	end := "12:00"
	if req.EndTime != nil && *req.EndTime != "" {
		end = *req.EndTime
	}

	booking := &calendar.Booking{
		Summary:     req.Title,
		Description: req.Description,
		Location:    req.Location,
		Start:       calendar.LocalDateTime(req.EventDate, start),
		End:         calendar.LocalDateTime(req.EventDate, end),
	}

	id, err := h.provider.Insert(c.Request.Context(), booking)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}

	httputil.RespondWithJSON(c, http.StatusCreated, gin.H{"id": id})
}

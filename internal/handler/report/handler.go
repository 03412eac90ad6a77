package report

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marceelkacz03/lola-crm/internal/middleware"
	"github.com/marceelkacz03/lola-crm/internal/service/report"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
	"github.com/marceelkacz03/lola-crm/pkg/httputil"
)

type Handler struct {
	service      *report.Service
	managerGuard gin.HandlerFunc
}

func NewHandler(service *report.Service, managerGuard gin.HandlerFunc) *Handler {
	return &Handler{service: service, managerGuard: managerGuard}
}

// RegisterRoutes guards the sales views (MANAGER and up); the dashboard,
// checklist and KPI views stay open so STAFF gets its restricted slice.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/alerts/sales", h.managerGuard, h.SalesAlerts)
	rg.GET("/reminders/daily", h.managerGuard, h.DailyFollowups)
	rg.GET("/reports/weekly", h.managerGuard, h.WeeklyReport)
	rg.GET("/dashboard/stats", h.DashboardStats)
	rg.GET("/dashboard/checklist", h.OperationalChecklist)
	rg.GET("/sellers/kpis", h.SellerKpis)
}

func (h *Handler) SalesAlerts(c *gin.Context) {
	inactiveDays := 0
	if raw := c.Query("inactiveDays"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid inactiveDays", err))
			return
		}
		inactiveDays = parsed
	}

	alerts, err := h.service.SalesAlerts(c.Request.Context(), inactiveDays)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, alerts)
}

func (h *Handler) DailyFollowups(c *gin.Context) {
	followups, err := h.service.DailyFollowups(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, followups)
}

func (h *Handler) WeeklyReport(c *gin.Context) {
	weekly, err := h.service.WeeklyReport(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, weekly)
}

func (h *Handler) DashboardStats(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	stats, err := h.service.DashboardStats(c.Request.Context(), claims.Role)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, stats)
}

func (h *Handler) OperationalChecklist(c *gin.Context) {
	checklist, err := h.service.OperationalChecklist(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, checklist)
}

func (h *Handler) SellerKpis(c *gin.Context) {
	kpis, err := h.service.SellerKpis(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, kpis)
}

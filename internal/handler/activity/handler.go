package activity

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marceelkacz03/lola-crm/internal/middleware"
	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/service/activity"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
	"github.com/marceelkacz03/lola-crm/pkg/httputil"
)

type Handler struct {
	service *activity.Service
}

func NewHandler(service *activity.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	activities := rg.Group("/activities")
	{
		activities.POST("", h.CreateActivity)
		activities.GET("", h.ListActivities)
	}
}

func (h *Handler) CreateActivity(c *gin.Context) {
	var req model.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	created, err := h.service.CreateActivity(c.Request.Context(), &req, claims.UserID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusCreated, created)
}

func (h *Handler) ListActivities(c *gin.Context) {
	activities, err := h.service.ListActivities(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, activities)
}

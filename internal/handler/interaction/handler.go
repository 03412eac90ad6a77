package interaction

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marceelkacz03/lola-crm/internal/middleware"
	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/service/interaction"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
	"github.com/marceelkacz03/lola-crm/pkg/httputil"
)

type Handler struct {
	service *interaction.Service
}

func NewHandler(service *interaction.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	interactions := rg.Group("/interactions")
	{
		interactions.POST("", h.CreateInteraction)
		interactions.GET("", h.ListInteractions)
	}
}

func (h *Handler) CreateInteraction(c *gin.Context) {
	var req model.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	created, err := h.service.CreateInteraction(c.Request.Context(), &req, claims.UserID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusCreated, created)
}

func (h *Handler) ListInteractions(c *gin.Context) {
	interactions, err := h.service.ListInteractions(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, interactions)
}

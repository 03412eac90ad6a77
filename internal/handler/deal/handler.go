package deal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/service/deal"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
	"github.com/marceelkacz03/lola-crm/pkg/httputil"
)

type Handler struct {
	service *deal.Service
}

func NewHandler(service *deal.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	deals := rg.Group("/deals")
	{
		deals.POST("", h.CreateDeal)
		deals.GET("", h.ListDeals)
		deals.GET("/:id", h.GetDeal)
		deals.PATCH("/:id", h.UpdateDeal)
	}
}

func (h *Handler) CreateDeal(c *gin.Context) {
	var req model.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	result, err := h.service.CreateDeal(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusCreated, result)
}

func (h *Handler) GetDeal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid deal ID", err))
		return
	}

	deal, err := h.service.GetDeal(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, deal)
}

func (h *Handler) ListDeals(c *gin.Context) {
	deals, err := h.service.ListDeals(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, deals)
}

func (h *Handler) UpdateDeal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid deal ID", err))
		return
	}

	var req model.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	result, err := h.service.UpdateDeal(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, result)
}

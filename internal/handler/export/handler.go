package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marceelkacz03/lola-crm/internal/service/export"
	"github.com/marceelkacz03/lola-crm/pkg/httputil"
)

type Handler struct {
	service *export.Service
}

func NewHandler(service *export.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/export")
	{
		exports.GET("/:entity", h.ExportCSV)
	}
}

func (h *Handler) ExportCSV(c *gin.Context) {
	entity := c.Param("entity")

	filename := fmt.Sprintf("%s-%s.csv", entity, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.WriteCSV(c.Request.Context(), c.Writer, entity); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

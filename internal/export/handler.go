// File: internal/export/handler.go
package export

import (
	"fmt"
	"net/http"

	"krikins_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for export handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new export handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the card export route.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profiles/:id/card.png", h.exportCard)
}

// exportCard streams the rendered card PNG as a file download.
func (h *Handler) exportCard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid profile ID format."))
		return
	}

	data, filename, err := h.service.ExportCard(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "image/png", data)
}

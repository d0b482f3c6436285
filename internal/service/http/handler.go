// Package httpsvc отдаёт операции над продажами по REST поверх gin.
package httpsvc

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sales/internal/domain"
	"github.com/vladislavdragonenkov/sales/internal/service/sales"
)

const (
	directionAfter  = "after"
	directionBefore = "before"

	pingResponse = "rest api pong!"
)

// SaleService — операции сервиса, которые нужны REST-слою.
type SaleService interface {
	FindByID(ctx context.Context, id string) (domain.Sale, error)
	Create(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	DeleteByID(ctx context.Context, id string) error
	Update(ctx context.Context, sale domain.Sale, fields []string) error
	Find(ctx context.Context, id string, limit int, after bool) ([]domain.Sale, error)
}

// SalesHandler реализует HTTP-обработчики продаж.
type SalesHandler struct {
	service SaleService
	logger  *log.Entry
}

// NewSalesHandler создаёт обработчик поверх сервиса.
func NewSalesHandler(service SaleService, logger *log.Entry) *SalesHandler {
	if logger == nil {
		logger = log.New().WithField("component", "sales-http")
	}
	return &SalesHandler{service: service, logger: logger}
}

type updateSaleRequest struct {
	Fields []string    `json:"fields"`
	Sale   domain.Sale `json:"sale"`
}

type listSalesResponse struct {
	Sales []domain.Sale `json:"sales"`
}

func (h *SalesHandler) handlePing(c *gin.Context) {
	c.String(http.StatusOK, pingResponse)
}

func (h *SalesHandler) handleCreateSale(c *gin.Context) {
	var req domain.Sale
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("failed to bind create sale request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *SalesHandler) handleGetSale(c *gin.Context) {
	sale, err := h.service.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

// handleUpdateSale применяет частичное обновление. id берётся из пути,
// id в теле запроса игнорируется.
func (h *SalesHandler) handleUpdateSale(c *gin.Context) {
	var req updateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("failed to bind update sale request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	req.Sale.ID = c.Param("id")

	if err := h.service.Update(c.Request.Context(), req.Sale, req.Fields); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SalesHandler) handleDeleteSale(c *gin.Context) {
	if err := h.service.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SalesHandler) handleListSales(c *gin.Context) {
	limit := domain.DefaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	var after bool
	switch c.DefaultQuery("direction", directionAfter) {
	case directionAfter:
		after = true
	case directionBefore:
		after = false
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be after or before"})
		return
	}

	page, err := h.service.Find(c.Request.Context(), c.Query("anchor"), limit, after)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, listSalesResponse{Sales: page})
}

// writeError сопоставляет ошибку сервиса с HTTP-статусом.
func (h *SalesHandler) writeError(c *gin.Context, err error) {
	var nullErr *sales.ResourceFieldNullError
	switch {
	case errors.Is(err, sales.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
	case errors.As(err, &nullErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": nullErr.Error(), "field": nullErr.Field})
	case errors.Is(err, sales.ErrInvalidArgs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid arguments"})
	default:
		h.logger.WithError(err).WithField("path", c.FullPath()).Error("sale request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

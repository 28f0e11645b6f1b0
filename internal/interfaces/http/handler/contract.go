package handler

import (
	"strconv"

	appcontract "github.com/contractportal/backend/internal/application/contract"
	"github.com/contractportal/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContractHandler serves the contract portal endpoints
type ContractHandler struct {
	BaseHandler
	service *appcontract.Service
}

// NewContractHandler creates a contract handler
func NewContractHandler(service *appcontract.Service, logger *zap.Logger) *ContractHandler {
	return &ContractHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes mounts the contract routes on the given group
func (h *ContractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/contracts")
	{
		contracts.GET("", h.List)
		contracts.GET("/statuses", h.Statuses)
		contracts.GET("/stats", h.Stats)
		contracts.GET("/:id", h.GetByID)
	}
}

// listQuery binds the contract listing query parameters. Out-of-range
// values are normalized by the service, not rejected here.
type listQuery struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Search    string `form:"search"`
	Status    string `form:"status"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// List returns one page of the client's contracts
func (h *ContractHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "invalid query parameters")
		return
	}

	summaries, meta, err := h.service.List(c.Request.Context(), appcontract.ListInput{
		ClientEmail: clientEmail(c),
		Page:        q.Page,
		Limit:       q.Limit,
		Search:      q.Search,
		StatusCode:  q.Status,
		SortBy:      q.SortBy,
		SortOrder:   q.SortOrder,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, summaries, dto.Meta{
		CurrentPage: meta.CurrentPage,
		PerPage:     meta.PerPage,
		Total:       meta.Total,
		TotalPages:  meta.TotalPages,
		From:        meta.From,
		To:          meta.To,
		HasNextPage: meta.HasNextPage,
		HasPrevPage: meta.HasPrevPage,
	})
}

// GetByID returns the full detail of one of the client's contracts
func (h *ContractHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		h.BadRequest(c, "contract id must be a positive integer")
		return
	}

	detail, err := h.service.Get(c.Request.Context(), clientEmail(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// Statuses returns the contract status filter options
func (h *ContractHandler) Statuses(c *gin.Context) {
	statuses, err := h.service.Statuses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statuses)
}

// Stats returns the client's contract portfolio aggregates
func (h *ContractHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), clientEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

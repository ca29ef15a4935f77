package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/app/services"
	"github.com/campuscore/api/internal/middleware"
	"github.com/campuscore/api/internal/pkg/helpers"
)

// BatchController handles batch management.
type BatchController struct {
	batchService *services.BatchService
}

// NewBatchController creates a new BatchController.
func NewBatchController(batchService *services.BatchService) *BatchController {
	return &BatchController{batchService: batchService}
}

// CreateBatch handles POST /batches.
func (c *BatchController) CreateBatch(ctx *gin.Context) {
	var req dto.CreateBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	batch, err := c.batchService.CreateBatch(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(http.StatusCreated, "Batch created", batch))
}

// GetBatch handles GET /batches/:id.
func (c *BatchController) GetBatch(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	batch, err := c.batchService.GetBatch(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Batch retrieved", batch))
}

// ListBatches handles GET /batches.
func (c *BatchController) ListBatches(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	list, err := c.batchService.ListBatches(ctx.Request.Context(), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Batches retrieved", list))
}

// UpdateBatch handles PATCH /batches/:id.
func (c *BatchController) UpdateBatch(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	batch, err := c.batchService.UpdateBatch(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Batch updated", batch))
}

// DeleteBatch handles DELETE /batches/:id.
func (c *BatchController) DeleteBatch(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.batchService.DeleteBatch(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Batch deleted", nil))
}

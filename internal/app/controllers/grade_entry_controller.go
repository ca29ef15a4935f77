package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/app/services"
	"github.com/campuscore/api/internal/middleware"
)

// GradeEntryController handles mark recording.
type GradeEntryController struct {
	entryService *services.GradeEntryService
}

// NewGradeEntryController creates a new GradeEntryController.
func NewGradeEntryController(entryService *services.GradeEntryService) *GradeEntryController {
	return &GradeEntryController{entryService: entryService}
}

// CreateEntry handles POST /grade-entries.
func (c *GradeEntryController) CreateEntry(ctx *gin.Context) {
	var req dto.CreateGradeEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	entry, err := c.entryService.CreateEntry(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(http.StatusCreated, "Grade entry created", entry))
}

// BulkCreateEntries handles POST /grade-entries/bulk. The response status
// reflects the aggregate outcome: 201 when every entry lands, 207 for a
// mix, 422 when nothing does.
func (c *GradeEntryController) BulkCreateEntries(ctx *gin.Context) {
	var req dto.BulkCreateGradeEntriesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	result, err := c.entryService.BulkCreateEntries(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := result.StatusCode()
	ctx.JSON(status, dto.NewSuccessResponse(status, "Bulk grade entries processed", result))
}

// GetEntry handles GET /grade-entries/:id.
func (c *GradeEntryController) GetEntry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	entry, err := c.entryService.GetEntry(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Grade entry retrieved", entry))
}

// ListEntriesByField handles GET /grade-fields/:id/entries.
func (c *GradeEntryController) ListEntriesByField(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	entries, err := c.entryService.ListEntriesByField(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Grade entries retrieved", entries))
}

// ListEntriesByUser handles GET /users/:id/grade-entries.
func (c *GradeEntryController) ListEntriesByUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	entries, err := c.entryService.ListEntriesByUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Grade entries retrieved", entries))
}

// UpdateEntry handles PATCH /grade-entries/:id.
func (c *GradeEntryController) UpdateEntry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateGradeEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	entry, err := c.entryService.UpdateEntry(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Grade entry updated", entry))
}

// DeleteEntry handles DELETE /grade-entries/:id.
func (c *GradeEntryController) DeleteEntry(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.entryService.DeleteEntry(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Grade entry deleted", nil))
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/app/services"
	"github.com/campuscore/api/internal/middleware"
)

// GradeFieldController handles the gradable components of a
// (batch, subject) pair.
type GradeFieldController struct {
	fieldService *services.GradeFieldService
}

// NewGradeFieldController creates a new GradeFieldController.
func NewGradeFieldController(fieldService *services.GradeFieldService) *GradeFieldController {
	return &GradeFieldController{fieldService: fieldService}
}

// CreateField handles POST /grade-fields.
func (c *GradeFieldController) CreateField(ctx *gin.Context) {
	var req dto.CreateGradeFieldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	field, err := c.fieldService.CreateField(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(http.StatusCreated, "Grade field created", field))
}

// GetField handles GET /grade-fields/:id.
func (c *GradeFieldController) GetField(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	field, err := c.fieldService.GetField(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Grade field retrieved", field))
}

// ListFields handles GET /grade-fields?batchId=...&subjectId=...
func (c *GradeFieldController) ListFields(ctx *gin.Context) {
	batchID, ok := parseIDQuery(ctx, "batchId")
	if !ok {
		return
	}
	subjectID, ok := parseIDQuery(ctx, "subjectId")
	if !ok {
		return
	}

	fields, err := c.fieldService.ListFields(ctx.Request.Context(), batchID, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Grade fields retrieved", fields))
}

// UpdateField handles PATCH /grade-fields/:id.
func (c *GradeFieldController) UpdateField(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateGradeFieldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	field, err := c.fieldService.UpdateField(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Grade field updated", field))
}

// DeleteField handles DELETE /grade-fields/:id.
func (c *GradeFieldController) DeleteField(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.fieldService.DeleteField(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Grade field deleted", nil))
}

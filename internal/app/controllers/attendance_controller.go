package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/app/services"
	"github.com/campuscore/api/internal/middleware"
)

// AttendanceController handles class sessions and student markings.
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController.
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// CreateSession handles POST /attendance/sessions.
func (c *AttendanceController) CreateSession(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			http.StatusUnauthorized, "Authentication required", ""))
		return
	}

	var req dto.CreateAttendanceSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	session, err := c.attendanceService.CreateSession(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(http.StatusCreated, "Attendance session created", session))
}

// GetSession handles GET /attendance/sessions/:id.
func (c *AttendanceController) GetSession(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	session, err := c.attendanceService.GetSession(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Attendance session retrieved", session))
}

// ListSessions handles GET /attendance/sessions?batchId=...&subjectId=...
func (c *AttendanceController) ListSessions(ctx *gin.Context) {
	batchID, ok := parseIDQuery(ctx, "batchId")
	if !ok {
		return
	}
	subjectID, ok := parseIDQuery(ctx, "subjectId")
	if !ok {
		return
	}

	sessions, err := c.attendanceService.ListSessions(ctx.Request.Context(), batchID, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Attendance sessions retrieved", sessions))
}

// MarkAttendance handles POST /attendance/records.
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			http.StatusUnauthorized, "Authentication required", ""))
		return
	}

	var req dto.CreateAttendanceRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	record, err := c.attendanceService.MarkAttendance(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(http.StatusCreated, "Attendance marked", record))
}

// BulkMarkAttendance handles POST /attendance/records/bulk.
func (c *AttendanceController) BulkMarkAttendance(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			http.StatusUnauthorized, "Authentication required", ""))
		return
	}

	var req dto.BulkCreateAttendanceRecordsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	result, err := c.attendanceService.BulkMarkAttendance(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(http.StatusCreated, "Bulk attendance processed", result))
}

// ListRecords handles GET /attendance/sessions/:id/records.
func (c *AttendanceController) ListRecords(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	records, err := c.attendanceService.ListRecords(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Attendance records retrieved", records))
}

// UpdateRecord handles PATCH /attendance/sessions/:id/records/:studentId.
func (c *AttendanceController) UpdateRecord(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			http.StatusUnauthorized, "Authentication required", ""))
		return
	}

	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	var req struct {
		Status  models.AttendanceStatus `json:"status" binding:"required,oneof=present absent late"`
		Remarks string                  `json:"remarks,omitempty"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	record, err := c.attendanceService.UpdateRecord(ctx.Request.Context(), userID, sessionID, studentID, req.Status, req.Remarks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Attendance record updated", record))
}

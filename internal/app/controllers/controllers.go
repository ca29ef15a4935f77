// Package controllers translates HTTP requests into service calls and
// service results into the response envelope.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/app/services"
)

// Controllers holds every controller instance.
type Controllers struct {
	Auth       *AuthController
	User       *UserController
	Batch      *BatchController
	Subject    *SubjectController
	GradeField *GradeFieldController
	GradeEntry *GradeEntryController
	Attendance *AttendanceController
}

// NewControllers wires the controllers to the services.
func NewControllers(svc *services.Services) *Controllers {
	return &Controllers{
		Auth:       NewAuthController(svc.Auth),
		User:       NewUserController(svc.User, svc.Profile),
		Batch:      NewBatchController(svc.Batch),
		Subject:    NewSubjectController(svc.Subject),
		GradeField: NewGradeFieldController(svc.GradeField),
		GradeEntry: NewGradeEntryController(svc.GradeEntry),
		Attendance: NewAttendanceController(svc.Attendance),
	}
}

// parseIDParam reads a positive integer path parameter, writing a 400 on
// failure.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "Invalid "+name+" parameter", name+" must be a positive number"))
		return 0, false
	}
	return id, true
}

// parseIDQuery reads a positive integer query parameter, writing a 400 on
// failure.
func parseIDQuery(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Query(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "Invalid "+name+" parameter", name+" must be a positive number"))
		return 0, false
	}
	return id, true
}

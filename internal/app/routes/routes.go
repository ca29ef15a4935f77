package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campuscore/api/internal/app/controllers"
	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/middleware"
)

// SetupRouter configures all application routes. Mutation of academic
// structure (batches, subjects, grade fields) is reserved for senior
// staff; mark recording is open to any staff role; user lifecycle
// operations are admin only.
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// User and profile routes
	users := authenticated.Group("/users")
	{
		users.GET("/me", ctrl.User.GetMe)
		users.POST("/me/profile", ctrl.User.CreateMyProfile)
		users.PATCH("/me/profile", ctrl.User.UpdateMyProfile)

		usersStaff := users.Group("")
		usersStaff.Use(authMiddleware.StaffRequired())
		{
			usersStaff.GET("", ctrl.User.ListUsers)
			usersStaff.GET("/:id", ctrl.User.GetUser)
			usersStaff.GET("/:id/grade-entries", ctrl.GradeEntry.ListEntriesByUser)
		}

		usersAdmin := users.Group("")
		usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			usersAdmin.POST("/:id/profile", ctrl.User.CreateProfile)
			usersAdmin.PATCH("/:id/profile", ctrl.User.UpdateProfile)
			usersAdmin.PATCH("/:id/role", ctrl.User.ChangeRole)
			usersAdmin.DELETE("/:id", ctrl.User.DeleteUser)
		}
	}

	// Batch routes
	batches := authenticated.Group("/batches")
	{
		batches.GET("", ctrl.Batch.ListBatches)
		batches.GET("/:id", ctrl.Batch.GetBatch)

		batchesAdmin := batches.Group("")
		batchesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RolePrincipal, models.RoleHOD))
		{
			batchesAdmin.POST("", ctrl.Batch.CreateBatch)
			batchesAdmin.PATCH("/:id", ctrl.Batch.UpdateBatch)
			batchesAdmin.DELETE("/:id", ctrl.Batch.DeleteBatch)
		}
	}

	// Subject routes
	subjects := authenticated.Group("/subjects")
	{
		subjects.GET("", ctrl.Subject.ListSubjects)
		subjects.GET("/:id", ctrl.Subject.GetSubject)

		subjectsAdmin := subjects.Group("")
		subjectsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RolePrincipal, models.RoleHOD))
		{
			subjectsAdmin.POST("", ctrl.Subject.CreateSubject)
			subjectsAdmin.PATCH("/:id", ctrl.Subject.UpdateSubject)
			subjectsAdmin.DELETE("/:id", ctrl.Subject.DeleteSubject)
		}
	}

	// Grade field routes
	gradeFields := authenticated.Group("/grade-fields")
	{
		gradeFields.GET("", ctrl.GradeField.ListFields)
		gradeFields.GET("/:id", ctrl.GradeField.GetField)
		gradeFields.GET("/:id/entries", ctrl.GradeEntry.ListEntriesByField)

		gradeFieldsStaff := gradeFields.Group("")
		gradeFieldsStaff.Use(authMiddleware.StaffRequired())
		{
			gradeFieldsStaff.POST("", ctrl.GradeField.CreateField)
			gradeFieldsStaff.PATCH("/:id", ctrl.GradeField.UpdateField)
		}

		gradeFieldsAdmin := gradeFields.Group("")
		gradeFieldsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			gradeFieldsAdmin.DELETE("/:id", ctrl.GradeField.DeleteField)
		}
	}

	// Grade entry routes
	gradeEntries := authenticated.Group("/grade-entries")
	gradeEntries.Use(authMiddleware.StaffRequired())
	{
		gradeEntries.POST("", ctrl.GradeEntry.CreateEntry)
		gradeEntries.POST("/bulk", ctrl.GradeEntry.BulkCreateEntries)
		gradeEntries.GET("/:id", ctrl.GradeEntry.GetEntry)
		gradeEntries.PATCH("/:id", ctrl.GradeEntry.UpdateEntry)
		gradeEntries.DELETE("/:id", ctrl.GradeEntry.DeleteEntry)
	}

	// Attendance routes
	attendance := authenticated.Group("/attendance")
	attendance.Use(authMiddleware.StaffRequired())
	{
		attendance.POST("/sessions", ctrl.Attendance.CreateSession)
		attendance.GET("/sessions", ctrl.Attendance.ListSessions)
		attendance.GET("/sessions/:id", ctrl.Attendance.GetSession)
		attendance.GET("/sessions/:id/records", ctrl.Attendance.ListRecords)
		attendance.PATCH("/sessions/:id/records/:studentId", ctrl.Attendance.UpdateRecord)
		attendance.POST("/records", ctrl.Attendance.MarkAttendance)
		attendance.POST("/records/bulk", ctrl.Attendance.BulkMarkAttendance)
	}
}

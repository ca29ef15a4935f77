package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/app/services"
	"github.com/campuscore/api/internal/middleware"
	"github.com/campuscore/api/internal/pkg/helpers"
)

// UserController handles user accounts, role profiles and role changes.
type UserController struct {
	userService    *services.UserService
	profileService *services.ProfileService
}

// NewUserController creates a new UserController.
func NewUserController(userService *services.UserService, profileService *services.ProfileService) *UserController {
	return &UserController{userService: userService, profileService: profileService}
}

// GetMe handles GET /users/me.
func (c *UserController) GetMe(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			http.StatusUnauthorized, "Authentication required", ""))
		return
	}

	profile, err := c.userService.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Profile retrieved", profile))
}

// GetUser handles GET /users/:id.
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.userService.GetUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "User retrieved", profile))
}

// ListUsers handles GET /users?role=...&search=...&page=...&limit=...
func (c *UserController) ListUsers(ctx *gin.Context) {
	role := models.Role(ctx.Query("role"))
	if role == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "Invalid role parameter", "role query parameter is required"))
		return
	}

	page, limit := helpers.ParsePaginationParams(ctx)

	list, err := c.userService.ListUsersByRole(ctx.Request.Context(), role, ctx.Query("search"), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Users retrieved", list))
}

// CreateMyProfile handles POST /users/me/profile. It completes the
// authenticated user's role profile.
func (c *UserController) CreateMyProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			http.StatusUnauthorized, "Authentication required", ""))
		return
	}

	c.createProfile(ctx, userID)
}

// CreateProfile handles POST /users/:id/profile.
func (c *UserController) CreateProfile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	c.createProfile(ctx, id)
}

func (c *UserController) createProfile(ctx *gin.Context, userID int64) {
	var req dto.CreateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	profile, err := c.profileService.CreateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(http.StatusCreated, "Profile created", profile))
}

// UpdateMyProfile handles PATCH /users/me/profile.
func (c *UserController) UpdateMyProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			http.StatusUnauthorized, "Authentication required", ""))
		return
	}

	c.updateProfile(ctx, userID)
}

// UpdateProfile handles PATCH /users/:id/profile.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	c.updateProfile(ctx, id)
}

func (c *UserController) updateProfile(ctx *gin.Context, userID int64) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Profile updated", profile))
}

// ChangeRole handles PATCH /users/:id/role.
func (c *UserController) ChangeRole(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	profile, err := c.userService.ChangeUserRole(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "Role changed", profile))
}

// DeleteUser handles DELETE /users/:id.
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, "User deleted", nil))
}

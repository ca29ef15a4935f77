// Package seed creates the default records a fresh deployment needs.
package seed

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	appModels "github.com/campuscore/api/internal/app/models"
	appRepos "github.com/campuscore/api/internal/app/repositories"
	"github.com/campuscore/api/internal/pkg/auth"
	"github.com/campuscore/api/internal/pkg/logger"
)

const defaultAdminEmail = "admin@campuscore.app"

// CreateDefaultData creates the default admin account (with its teacher
// profile) if it doesn't exist. Existing data is left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	teacherRepo := appRepos.NewTeacherProfileRepository(dbPool)

	var finalErr error

	existing, err := userRepo.GetByEmail(ctx, defaultAdminEmail)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking for default admin user")
		return err
	}

	if existing != nil {
		return nil
	}

	logger.Info().Msg("Creating default admin user...")

	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		password = "Admin123!"
		logger.Warn().Msg("ADMIN_INITIAL_PASSWORD not set, using the default password")
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Email:     defaultAdminEmail,
		Password:  hashedPassword,
		Name:      "System Administrator",
		FirstName: "System",
		LastName:  "Administrator",
		Role:      appModels.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		logger.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	profile := &appModels.TeacherProfile{
		UserID:        admin.ID,
		Designation:   "Administrator",
		Department:    "Administration",
		DateOfJoining: time.Now(),
	}

	if err := teacherRepo.Create(ctx, profile); err != nil {
		logger.Error().Err(err).Int64("userId", admin.ID).Msg("Error creating admin teacher profile")
		finalErr = errors.Join(finalErr, err)
	}

	logger.Info().Str("email", defaultAdminEmail).Msg("Default admin user created")
	return finalErr
}

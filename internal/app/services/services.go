// Package services contains the business logic of the API. Services
// consume small store interfaces satisfied by the pgx repositories and
// return domain models; HTTP concerns stay in the controllers.
package services

import (
	"github.com/campuscore/api/internal/app/repositories"
	"github.com/campuscore/api/internal/pkg/identity"
)

// Services holds every service instance.
type Services struct {
	Auth       *AuthService
	User       *UserService
	Profile    *ProfileService
	Batch      *BatchService
	Subject    *SubjectService
	GradeField *GradeFieldService
	GradeEntry *GradeEntryService
	Attendance *AttendanceService
}

// NewServices wires the services to the repositories and the identity
// client.
func NewServices(repos *repositories.Repositories, identityClient *identity.Client) *Services {
	profile := NewProfileService(
		repos.UserRepository,
		repos.StudentProfileRepository,
		repos.TeacherProfileRepository,
		repos.ParentProfileRepository,
		repos.BatchRepository,
	)

	return &Services{
		Auth:       NewAuthService(repos.UserRepository, identityClient, repos.SessionRepository),
		User:       NewUserService(repos.UserRepository, repos.GradeEntryRepository, profile, identityClient),
		Profile:    profile,
		Batch:      NewBatchService(repos.BatchRepository, repos.TeacherProfileRepository),
		Subject:    NewSubjectService(repos.SubjectRepository),
		GradeField: NewGradeFieldService(repos.GradeFieldRepository, repos.GradeEntryRepository, repos.BatchRepository, repos.SubjectRepository),
		GradeEntry: NewGradeEntryService(repos.GradeEntryRepository, repos.GradeFieldRepository, repos.UserRepository),
		Attendance: NewAttendanceService(repos.AttendanceRepository, repos.BatchRepository, repos.SubjectRepository, repos.TeacherProfileRepository, repos.StudentProfileRepository),
	}
}

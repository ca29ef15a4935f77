package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances.
type Repositories struct {
	UserRepository           *UserRepository
	SessionRepository        *SessionRepository
	StudentProfileRepository *StudentProfileRepository
	TeacherProfileRepository *TeacherProfileRepository
	ParentProfileRepository  *ParentProfileRepository
	BatchRepository          *BatchRepository
	SubjectRepository        *SubjectRepository
	GradeFieldRepository     *GradeFieldRepository
	GradeEntryRepository     *GradeEntryRepository
	AttendanceRepository     *AttendanceRepository
}

// NewRepositories initializes all repositories.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:           NewUserRepository(db),
		SessionRepository:        NewSessionRepository(db),
		StudentProfileRepository: NewStudentProfileRepository(db),
		TeacherProfileRepository: NewTeacherProfileRepository(db),
		ParentProfileRepository:  NewParentProfileRepository(db),
		BatchRepository:          NewBatchRepository(db),
		SubjectRepository:        NewSubjectRepository(db),
		GradeFieldRepository:     NewGradeFieldRepository(db),
		GradeEntryRepository:     NewGradeEntryRepository(db),
		AttendanceRepository:     NewAttendanceRepository(db),
	}
}

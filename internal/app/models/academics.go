package models

// Batch defines a cohort of students admitted in one year, based on the
// 'batches' table. Unique on (name, adm_year).
type Batch struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	AdmYear        int    `json:"admYear" db:"adm_year"`
	Department     string `json:"department" db:"department"`
	StaffAdvisorID int64  `json:"staffAdvisorId" db:"staff_advisor_id"`

	StaffAdvisor *TeacherProfile `json:"staffAdvisor,omitempty"`
}

// SubjectType distinguishes theory and practical subjects.
type SubjectType string

const (
	SubjectTheory    SubjectType = "Theory"
	SubjectPractical SubjectType = "Practical"
)

// Subject defines a teachable subject based on the 'subjects' table.
// Invariant: pass_mark never exceeds total_marks.
type Subject struct {
	ID          int64       `json:"id" db:"id"`
	Semester    string      `json:"sem" db:"sem"`
	SubjectCode string      `json:"subjectCode" db:"subject_code"`
	Type        SubjectType `json:"type" db:"type"`
	TotalMarks  float64     `json:"totalMarks" db:"total_marks"`
	PassMark    float64     `json:"passMark" db:"pass_mark"`
}

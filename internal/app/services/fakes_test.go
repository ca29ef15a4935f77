package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/pkg/identity"
)

// opLog records the order of mutating operations across fakes.
type opLog struct {
	ops []string
}

func (l *opLog) record(op string) {
	if l != nil {
		l.ops = append(l.ops, op)
	}
}

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
	log    *opLog
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}}
}

func (f *fakeUserStore) add(user *models.User) *models.User {
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	} else if user.ID > f.nextID {
		f.nextID = user.ID
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email")
		}
	}
	f.add(user)
	f.log.record("user.create")
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) UpdateInfo(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id int64, role models.Role) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	u.Role = role
	f.log.record("user.updateRole")
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int64) error {
	delete(f.users, id)
	f.log.record("user.delete")
	return nil
}

func (f *fakeUserStore) ListByRole(_ context.Context, role models.Role, search string, offset, limit int) ([]*models.User, error) {
	var matched []*models.User
	for _, u := range f.users {
		if u.Role != role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Name+u.Email), strings.ToLower(search)) {
			continue
		}
		matched = append(matched, u)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeUserStore) CountByRole(_ context.Context, role models.Role, search string) (int64, error) {
	users, _ := f.ListByRole(context.Background(), role, search, 0, len(f.users)+1)
	return int64(len(users)), nil
}

type fakeStudentStore struct {
	profiles map[int64]*models.StudentProfile
	nextID   int64
	log      *opLog
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{profiles: map[int64]*models.StudentProfile{}}
}

func (f *fakeStudentStore) Create(_ context.Context, profile *models.StudentProfile) error {
	f.nextID++
	profile.ID = f.nextID
	f.profiles[profile.ID] = profile
	f.log.record("student.create")
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.StudentProfile, error) {
	return f.profiles[id], nil
}

func (f *fakeStudentStore) GetByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentStore) Update(_ context.Context, profile *models.StudentProfile) error {
	if _, ok := f.profiles[profile.ID]; !ok {
		return fmt.Errorf("student profile %d not found", profile.ID)
	}
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeStudentStore) DeleteByUserID(_ context.Context, userID int64) error {
	for id, p := range f.profiles {
		if p.UserID == userID {
			delete(f.profiles, id)
		}
	}
	f.log.record("student.deleteByUser")
	return nil
}

type fakeTeacherStore struct {
	profiles map[int64]*models.TeacherProfile
	nextID   int64
	log      *opLog

	failDeleteByUserID error
}

func newFakeTeacherStore() *fakeTeacherStore {
	return &fakeTeacherStore{profiles: map[int64]*models.TeacherProfile{}}
}

func (f *fakeTeacherStore) Create(_ context.Context, profile *models.TeacherProfile) error {
	f.nextID++
	profile.ID = f.nextID
	f.profiles[profile.ID] = profile
	f.log.record("teacher.create")
	return nil
}

func (f *fakeTeacherStore) GetByID(_ context.Context, id int64) (*models.TeacherProfile, error) {
	return f.profiles[id], nil
}

func (f *fakeTeacherStore) GetByUserID(_ context.Context, userID int64) (*models.TeacherProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeTeacherStore) Update(_ context.Context, profile *models.TeacherProfile) error {
	if _, ok := f.profiles[profile.ID]; !ok {
		return fmt.Errorf("teacher profile %d not found", profile.ID)
	}
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeTeacherStore) DeleteByUserID(_ context.Context, userID int64) error {
	if f.failDeleteByUserID != nil {
		return f.failDeleteByUserID
	}
	for id, p := range f.profiles {
		if p.UserID == userID {
			delete(f.profiles, id)
		}
	}
	f.log.record("teacher.deleteByUser")
	return nil
}

type fakeParentStore struct {
	profiles map[int64]*models.ParentProfile
	nextID   int64
	log      *opLog
}

func newFakeParentStore() *fakeParentStore {
	return &fakeParentStore{profiles: map[int64]*models.ParentProfile{}}
}

func (f *fakeParentStore) Create(_ context.Context, profile *models.ParentProfile) error {
	f.nextID++
	profile.ID = f.nextID
	f.profiles[profile.ID] = profile
	f.log.record("parent.create")
	return nil
}

func (f *fakeParentStore) GetByUserID(_ context.Context, userID int64) (*models.ParentProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeParentStore) Update(_ context.Context, profile *models.ParentProfile) error {
	if _, ok := f.profiles[profile.ID]; !ok {
		return fmt.Errorf("parent profile %d not found", profile.ID)
	}
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeParentStore) DeleteByUserID(_ context.Context, userID int64) error {
	for id, p := range f.profiles {
		if p.UserID == userID {
			delete(f.profiles, id)
		}
	}
	f.log.record("parent.deleteByUser")
	return nil
}

func (f *fakeParentStore) DeleteByChildID(_ context.Context, childID int64) error {
	for id, p := range f.profiles {
		if p.ChildID == childID {
			delete(f.profiles, id)
		}
	}
	f.log.record("parent.deleteByChild")
	return nil
}

type fakeBatchStore struct {
	batches map[int64]*models.Batch
	nextID  int64
}

func newFakeBatchStore() *fakeBatchStore {
	return &fakeBatchStore{batches: map[int64]*models.Batch{}}
}

func (f *fakeBatchStore) Create(_ context.Context, batch *models.Batch) error {
	f.nextID++
	batch.ID = f.nextID
	f.batches[batch.ID] = batch
	return nil
}

func (f *fakeBatchStore) GetByID(_ context.Context, id int64) (*models.Batch, error) {
	return f.batches[id], nil
}

func (f *fakeBatchStore) ExistsByNameYear(_ context.Context, name string, admYear int, excludeID int64) (bool, error) {
	for _, b := range f.batches {
		if b.Name == name && b.AdmYear == admYear && b.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBatchStore) List(_ context.Context, offset, limit int) ([]*models.Batch, error) {
	var all []*models.Batch
	for _, b := range f.batches {
		all = append(all, b)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeBatchStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.batches)), nil
}

func (f *fakeBatchStore) Update(_ context.Context, batch *models.Batch) error {
	f.batches[batch.ID] = batch
	return nil
}

func (f *fakeBatchStore) Delete(_ context.Context, id int64) error {
	delete(f.batches, id)
	return nil
}

type fakeSubjectStore struct {
	subjects map[int64]*models.Subject
	nextID   int64
}

func newFakeSubjectStore() *fakeSubjectStore {
	return &fakeSubjectStore{subjects: map[int64]*models.Subject{}}
}

func (f *fakeSubjectStore) Create(_ context.Context, subject *models.Subject) error {
	for _, s := range f.subjects {
		if s.SubjectCode == subject.SubjectCode {
			return fmt.Errorf("duplicate subject code")
		}
	}
	f.nextID++
	subject.ID = f.nextID
	stored := *subject
	f.subjects[subject.ID] = &stored
	return nil
}

func (f *fakeSubjectStore) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	s, ok := f.subjects[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (f *fakeSubjectStore) List(_ context.Context, semester string, offset, limit int) ([]*models.Subject, error) {
	var matched []*models.Subject
	for _, s := range f.subjects {
		if semester == "" || s.Semester == semester {
			matched = append(matched, s)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeSubjectStore) Count(_ context.Context, semester string) (int64, error) {
	matched, _ := f.List(context.Background(), semester, 0, len(f.subjects)+1)
	return int64(len(matched)), nil
}

func (f *fakeSubjectStore) Update(_ context.Context, subject *models.Subject) error {
	stored := *subject
	f.subjects[subject.ID] = &stored
	return nil
}

func (f *fakeSubjectStore) Delete(_ context.Context, id int64) error {
	delete(f.subjects, id)
	return nil
}

type fakeGradeFieldStore struct {
	fields map[int64]*models.GradeField
	nextID int64
}

func newFakeGradeFieldStore() *fakeGradeFieldStore {
	return &fakeGradeFieldStore{fields: map[int64]*models.GradeField{}}
}

func (f *fakeGradeFieldStore) Create(_ context.Context, field *models.GradeField) error {
	f.nextID++
	field.ID = f.nextID
	f.fields[field.ID] = field
	return nil
}

func (f *fakeGradeFieldStore) GetByID(_ context.Context, id int64) (*models.GradeField, error) {
	return f.fields[id], nil
}

func (f *fakeGradeFieldStore) ListByBatchSubject(_ context.Context, batchID, subjectID int64) ([]*models.GradeField, error) {
	var matched []*models.GradeField
	for _, fl := range f.fields {
		if fl.BatchID == batchID && fl.SubjectID == subjectID {
			matched = append(matched, fl)
		}
	}
	return matched, nil
}

func (f *fakeGradeFieldStore) SumWeightage(_ context.Context, batchID, subjectID, excludeID int64) (float64, error) {
	var total float64
	for _, fl := range f.fields {
		if fl.BatchID == batchID && fl.SubjectID == subjectID && fl.ID != excludeID {
			total += fl.Weightage
		}
	}
	return total, nil
}

func (f *fakeGradeFieldStore) Update(_ context.Context, field *models.GradeField) error {
	f.fields[field.ID] = field
	return nil
}

func (f *fakeGradeFieldStore) Delete(_ context.Context, id int64) error {
	delete(f.fields, id)
	return nil
}

type fakeGradeEntryStore struct {
	entries map[int64]*models.GradeEntry
	nextID  int64
	log     *opLog
}

func newFakeGradeEntryStore() *fakeGradeEntryStore {
	return &fakeGradeEntryStore{entries: map[int64]*models.GradeEntry{}}
}

func (f *fakeGradeEntryStore) Create(_ context.Context, entry *models.GradeEntry) error {
	f.nextID++
	entry.ID = f.nextID
	f.entries[entry.ID] = entry
	f.log.record("entry.create")
	return nil
}

func (f *fakeGradeEntryStore) GetByID(_ context.Context, id int64) (*models.GradeEntry, error) {
	return f.entries[id], nil
}

func (f *fakeGradeEntryStore) GetByUserAndField(_ context.Context, userID, fieldID, excludeID int64) (*models.GradeEntry, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.GradeFieldID == fieldID && e.ID != excludeID {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeGradeEntryStore) ListByField(_ context.Context, fieldID int64) ([]*models.GradeEntry, error) {
	var matched []*models.GradeEntry
	for _, e := range f.entries {
		if e.GradeFieldID == fieldID {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (f *fakeGradeEntryStore) ListByUser(_ context.Context, userID int64) ([]*models.GradeEntry, error) {
	var matched []*models.GradeEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (f *fakeGradeEntryStore) CountByFieldID(_ context.Context, fieldID int64) (int64, error) {
	matched, _ := f.ListByField(context.Background(), fieldID)
	return int64(len(matched)), nil
}

func (f *fakeGradeEntryStore) Update(_ context.Context, entry *models.GradeEntry) error {
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeGradeEntryStore) Delete(_ context.Context, id int64) error {
	delete(f.entries, id)
	return nil
}

func (f *fakeGradeEntryStore) DeleteByUserID(_ context.Context, userID int64) error {
	for id, e := range f.entries {
		if e.UserID == userID {
			delete(f.entries, id)
		}
	}
	f.log.record("entry.deleteByUser")
	return nil
}

type fakeIdentityProvider struct {
	log        *opLog
	revoked    []int64
	failRevoke error
}

func (f *fakeIdentityProvider) ResolveSession(_ context.Context, _ string) (*identity.Principal, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeIdentityProvider) RevokeUser(_ context.Context, userID int64) error {
	if f.failRevoke != nil {
		return f.failRevoke
	}
	f.revoked = append(f.revoked, userID)
	f.log.record("identity.revoke")
	return nil
}

type fakeAttendanceStore struct {
	sessions map[int64]*models.AttendanceSession
	records  map[int64]*models.AttendanceRecord
	nextID   int64
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{
		sessions: map[int64]*models.AttendanceSession{},
		records:  map[int64]*models.AttendanceRecord{},
	}
}

func (f *fakeAttendanceStore) CreateSession(_ context.Context, session *models.AttendanceSession) error {
	f.nextID++
	session.ID = f.nextID
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeAttendanceStore) GetSessionByID(_ context.Context, id int64) (*models.AttendanceSession, error) {
	return f.sessions[id], nil
}

func (f *fakeAttendanceStore) ListSessionsByBatchSubject(_ context.Context, batchID, subjectID int64) ([]*models.AttendanceSession, error) {
	var matched []*models.AttendanceSession
	for _, s := range f.sessions {
		if s.BatchID == batchID && s.SubjectID == subjectID {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f *fakeAttendanceStore) CreateRecord(_ context.Context, record *models.AttendanceRecord) error {
	f.nextID++
	record.ID = f.nextID
	f.records[record.ID] = record
	return nil
}

func (f *fakeAttendanceStore) GetRecord(_ context.Context, sessionID, studentID int64) (*models.AttendanceRecord, error) {
	for _, r := range f.records {
		if r.SessionID == sessionID && r.StudentID == studentID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceStore) ListRecordsBySession(_ context.Context, sessionID int64) ([]*models.AttendanceRecord, error) {
	var matched []*models.AttendanceRecord
	for _, r := range f.records {
		if r.SessionID == sessionID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (f *fakeAttendanceStore) UpdateRecord(_ context.Context, record *models.AttendanceRecord) error {
	f.records[record.ID] = record
	return nil
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/levelminds/levelminds-backend/internal/apperr"
	"github.com/levelminds/levelminds-backend/internal/dtos"
	"github.com/levelminds/levelminds-backend/internal/models"
)

func scheduleRequest() *dtos.ScheduleInterviewRequest {
	return &dtos.ScheduleInterviewRequest{
		Title:     "First Round",
		Date:      "2030-06-01",
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

func applyAndShortlist(t *testing.T, db *gorm.DB, school *models.School, student *models.Student, job *models.Job) *models.Application {
	t.Helper()
	apps := NewApplicationService(db, newTestNotifier(db))
	require.NoError(t, apps.Apply(student.UserID, job.ID, &dtos.ApplyRequest{}, ""))
	var app models.Application
	require.NoError(t, db.First(&app, "job_id = ? AND student_id = ?", job.ID, student.ID).Error)
	require.NoError(t, apps.UpdateStatus(school.UserID, app.ID, models.ApplicationShortlisted))
	app.Status = models.ApplicationShortlisted
	return &app
}

func TestScheduleRequiresShortlisted(t *testing.T) {
	db := openTestDB(t)
	svc := NewInterviewService(db, newTestNotifier(db))
	apps := NewApplicationService(db, newTestNotifier(db))
	school := createSchool(t, db, "school@example.com")
	student := createStudent(t, db, "student@example.com")
	skill := createCoreSkill(t, db, "Mathematics", "Algebra")
	category := createCategory(t, db, "STEM", skill.ID)
	job := createJob(t, db, school, category, "Maths Teacher")
	require.NoError(t, apps.Apply(student.UserID, job.ID, &dtos.ApplyRequest{}, ""))

	var app models.Application
	require.NoError(t, db.First(&app, "job_id = ?", job.ID).Error)

	// Still in applied.
	_, err := svc.Schedule(school.UserID, app.ID, scheduleRequest())
	requireKind(t, err, apperr.KindInvalidInput)
}

func TestScheduleCreatesAndForcesStatus(t *testing.T) {
	db := openTestDB(t)
	svc := NewInterviewService(db, newTestNotifier(db))
	school := createSchool(t, db, "school@example.com")
	student := createStudent(t, db, "student@example.com")
	skill := createCoreSkill(t, db, "Mathematics", "Algebra")
	category := createCategory(t, db, "STEM", skill.ID)
	job := createJob(t, db, school, category, "Maths Teacher")
	app := applyAndShortlist(t, db, school, student, job)

	created, err := svc.Schedule(school.UserID, app.ID, scheduleRequest())
	require.NoError(t, err)
	assert.True(t, created)

	var reloaded models.Application
	require.NoError(t, db.Preload("Interview").First(&reloaded, "id = ?", app.ID).Error)
	assert.Equal(t, models.ApplicationInterviewScheduled, reloaded.Status)
	require.NotNil(t, reloaded.Interview)
	assert.Equal(t, "12 MG Road, Bengaluru, Karnataka, 560001", reloaded.Interview.Location)
}

func TestRescheduleKeepsSingleInterview(t *testing.T) {
	db := openTestDB(t)
	svc := NewInterviewService(db, newTestNotifier(db))
	school := createSchool(t, db, "school@example.com")
	student := createStudent(t, db, "student@example.com")
	skill := createCoreSkill(t, db, "Mathematics", "Algebra")
	category := createCategory(t, db, "STEM", skill.ID)
	job := createJob(t, db, school, category, "Maths Teacher")
	app := applyAndShortlist(t, db, school, student, job)

	created, err := svc.Schedule(school.UserID, app.ID, scheduleRequest())
	require.NoError(t, err)
	require.True(t, created)

	// The school moves between scheduling and rescheduling; the interview
	// picks up the current address.
	require.NoError(t, db.Model(&models.School{}).Where("id = ?", school.ID).
		Update("address", "99 Residency Road").Error)

	req := scheduleRequest()
	req.Date = "2030-06-02"
	created, err = svc.Schedule(school.UserID, app.ID, req)
	require.NoError(t, err)
	assert.False(t, created)

	var interviews []models.Interview
	require.NoError(t, db.Where("application_id = ?", app.ID).Find(&interviews).Error)
	require.Len(t, interviews, 1)
	assert.Equal(t, "2030-06-02", interviews[0].Date)
	assert.Equal(t, "99 Residency Road, Bengaluru, Karnataka, 560001", interviews[0].Location)

	var reloaded models.Application
	require.NoError(t, db.First(&reloaded, "id = ?", app.ID).Error)
	assert.Equal(t, models.ApplicationInterviewScheduled, reloaded.Status)
}

func TestScheduleValidatesTimes(t *testing.T) {
	db := openTestDB(t)
	svc := NewInterviewService(db, newTestNotifier(db))
	school := createSchool(t, db, "school@example.com")
	student := createStudent(t, db, "student@example.com")
	skill := createCoreSkill(t, db, "Mathematics", "Algebra")
	category := createCategory(t, db, "STEM", skill.ID)
	job := createJob(t, db, school, category, "Maths Teacher")
	app := applyAndShortlist(t, db, school, student, job)

	req := scheduleRequest()
	req.Date = "01-06-2030"
	_, err := svc.Schedule(school.UserID, app.ID, req)
	requireKind(t, err, apperr.KindInvalidInput)

	req = scheduleRequest()
	req.EndTime = "09:00"
	_, err = svc.Schedule(school.UserID, app.ID, req)
	requireKind(t, err, apperr.KindInvalidInput)

	req = scheduleRequest()
	req.EndTime = req.StartTime
	_, err = svc.Schedule(school.UserID, app.ID, req)
	requireKind(t, err, apperr.KindInvalidInput)
}

func TestStudentCalendar(t *testing.T) {
	db := openTestDB(t)
	svc := NewInterviewService(db, newTestNotifier(db))
	school := createSchool(t, db, "school@example.com")
	student := createStudent(t, db, "student@example.com")
	skill := createCoreSkill(t, db, "Mathematics", "Algebra")
	category := createCategory(t, db, "STEM", skill.ID)
	job := createJob(t, db, school, category, "Maths Teacher")
	app := applyAndShortlist(t, db, school, student, job)

	entries, err := svc.StudentCalendar(student.UserID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = svc.Schedule(school.UserID, app.ID, scheduleRequest())
	require.NoError(t, err)

	entries, err = svc.StudentCalendar(student.UserID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "First Round", entries[0].Title)
	assert.Equal(t, "Test School", entries[0].SchoolName)
	assert.Equal(t, "2030-06-01", entries[0].Date)
}

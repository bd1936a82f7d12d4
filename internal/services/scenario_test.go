package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levelminds/levelminds-backend/internal/dtos"
	"github.com/levelminds/levelminds-backend/internal/ingest"
	"github.com/levelminds/levelminds-backend/internal/models"
)

// TestRecruitmentFlow walks one candidate through the whole pipeline:
// provisioning, assessment, matching, application, shortlisting, interview.
func TestRecruitmentFlow(t *testing.T) {
	db := openTestDB(t)
	notifier := newTestNotifier(db)
	skills := NewSkillService(db)
	assessments := NewAssessmentService(db)
	jobs := NewJobService(db)
	applications := NewApplicationService(db, notifier)
	interviews := NewInterviewService(db, notifier)
	users := NewUserService(db, notifier, "http://localhost:8080")

	// Admin sets up the taxonomy.
	math, err := skills.CreateCoreSkill(&dtos.CreateCoreSkillRequest{
		Name:      "Mathematics",
		SubSkills: []string{"Algebra", "Geometry"},
	})
	require.NoError(t, err)
	stem, err := skills.CreateCategory(&dtos.CreateCategoryRequest{
		Name:   "STEM",
		Skills: []string{math.ID},
	})
	require.NoError(t, err)

	// Admin provisions accounts in bulk.
	created, err := users.BulkCreate(models.RoleStudent, []ingest.Row{
		ingest.NewRow(1, map[string]string{"name": "Asha", "email": "asha@example.com"}),
	})
	require.NoError(t, err)
	require.Equal(t, 1, created.UploadedCount)

	school := createSchool(t, db, "school@example.com")

	var studentUser models.User
	require.NoError(t, db.First(&studentUser, "email = ?", "asha@example.com").Error)
	var student models.Student
	require.NoError(t, db.First(&student, "user_id = ?", studentUser.ID).Error)

	// School posts an opening; the unassessed student does not see it yet.
	job, err := jobs.Create(school.UserID, &dtos.CreateJobRequest{
		Title:              "Maths Teacher",
		Type:               stem.ID,
		ApplicationEndDate: time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02"),
		SalaryMin:          4,
		Description:        "Teach maths",
		Responsibilities:   "Classes",
		Requirements:       "Degree",
	})
	require.NoError(t, err)

	feed, _, err := jobs.ListAvailable(studentUser.ID, &dtos.JobFilters{})
	require.NoError(t, err)
	assert.Empty(t, feed)

	// Marks arrive by spreadsheet; the job becomes visible.
	bulk, err := assessments.BulkUploadMarks(math.ID, []ingest.Row{
		ingest.NewRow(1, map[string]string{"email": "asha@example.com", "algebra": "8", "geometry": "9"}),
	})
	require.NoError(t, err)
	require.Equal(t, 1, bulk.UploadedCount)

	feed, _, err = jobs.ListAvailable(studentUser.ID, &dtos.JobFilters{})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, job.ID, feed[0].ID)

	// Apply, shortlist, schedule.
	require.NoError(t, applications.Apply(studentUser.ID, job.ID, &dtos.ApplyRequest{}, ""))
	var app models.Application
	require.NoError(t, db.First(&app, "job_id = ?", job.ID).Error)
	require.NoError(t, applications.UpdateStatus(school.UserID, app.ID, models.ApplicationShortlisted))

	isCreated, err := interviews.Schedule(school.UserID, app.ID, &dtos.ScheduleInterviewRequest{
		Title:     "Demo Class",
		Date:      "2030-06-01",
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	require.NoError(t, err)
	assert.True(t, isCreated)

	calendar, err := interviews.StudentCalendar(studentUser.ID)
	require.NoError(t, err)
	require.Len(t, calendar, 1)
	assert.Equal(t, "Demo Class", calendar[0].Title)

	// All review tabs agree.
	all, shortlisted, withInterview, err := jobs.ListApplicants(school.UserID, job.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, shortlisted, 1)
	require.Len(t, withInterview, 1)
	assert.Equal(t, models.ApplicationInterviewScheduled, all[0].Status)
	require.NotNil(t, all[0].Interview)
}

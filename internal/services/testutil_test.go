package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/levelminds/levelminds-backend/internal/database"
	"github.com/levelminds/levelminds-backend/internal/mailer"
	"github.com/levelminds/levelminds-backend/internal/models"
)

// openTestDB gives each test its own in-memory database with the production
// schema. TranslateError matches the real connection so duplicate-key
// handling behaves the same.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestNotifier(db *gorm.DB) *NotificationService {
	return NewNotificationService(db, &mailer.LogMailer{Log: zap.NewNop()}, zap.NewNop())
}

func createStudent(t *testing.T, db *gorm.DB, email string) *models.Student {
	t.Helper()
	user := &models.User{Email: email, Password: "x", Name: "Test Student", Role: models.RoleStudent}
	require.NoError(t, db.Create(user).Error)
	student := &models.Student{UserID: user.ID, FirstName: "Test", LastName: "Student"}
	require.NoError(t, db.Create(student).Error)
	student.User = *user
	return student
}

func createSchool(t *testing.T, db *gorm.DB, email string) *models.School {
	t.Helper()
	user := &models.User{Email: email, Password: "x", Name: "Test School", Role: models.RoleSchool}
	require.NoError(t, db.Create(user).Error)
	school := &models.School{
		UserID:  user.ID,
		Address: "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	}
	require.NoError(t, db.Create(school).Error)
	school.User = *user
	return school
}

func createCoreSkill(t *testing.T, db *gorm.DB, name string, subSkills ...string) *models.CoreSkill {
	t.Helper()
	skill := &models.CoreSkill{Name: name, SubSkills: subSkills}
	require.NoError(t, db.Create(skill).Error)
	return skill
}

func createCategory(t *testing.T, db *gorm.DB, name string, skillIDs ...string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, CoreSkillIDs: skillIDs}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createJob(t *testing.T, db *gorm.DB, school *models.School, category *models.Category, title string) *models.Job {
	t.Helper()
	job := &models.Job{
		SchoolID:            school.ID,
		CategoryID:          category.ID,
		Title:               title,
		Location:            "Bengaluru",
		ApplicationEndDate:  time.Now().UTC().AddDate(0, 1, 0),
		MinSalaryLPA:        4,
		JobDescription:      "Teach",
		KeyResponsibilities: "Classes",
		Requirements:        "Degree",
		Status:              models.JobStatusOpen,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

// assess writes a complete assessment directly, sidestepping the service
// when a test only needs the matching precondition.
func assess(t *testing.T, db *gorm.DB, student *models.Student, skill *models.CoreSkill) {
	t.Helper()
	marks := make(map[string]int, len(skill.SubSkills))
	for _, name := range skill.SubSkills {
		marks[name] = 5
	}
	_, err := upsertAssessment(db, student.ID, skill.ID, marks)
	require.NoError(t, err)
}

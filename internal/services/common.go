package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/levelminds/levelminds-backend/internal/apperr"
	"github.com/levelminds/levelminds-backend/internal/models"
)

const dateLayout = "2006-01-02"

func schoolForUser(db *gorm.DB, userID string) (*models.School, error) {
	var school models.School
	if err := db.First(&school, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("School profile not found.")
		}
		return nil, err
	}
	return &school, nil
}

func studentForUser(db *gorm.DB, userID string) (*models.Student, error) {
	var student models.Student
	if err := db.First(&student, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Student profile not found.")
		}
		return nil, err
	}
	return &student, nil
}

// schoolAddress joins the school's current address fields into the snapshot
// string stored on jobs and interviews.
func schoolAddress(school *models.School) string {
	return fmt.Sprintf("%s, %s, %s, %s", school.Address, school.City, school.State, school.Pincode)
}

func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s, "@")
}

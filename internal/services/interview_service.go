package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/levelminds/levelminds-backend/internal/apperr"
	"github.com/levelminds/levelminds-backend/internal/dtos"
	"github.com/levelminds/levelminds-backend/internal/models"
)

const timeLayout = "15:04"

// InterviewService attaches at most one interview to an application and is
// the only path into the interview_scheduled state.
type InterviewService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewInterviewService(db *gorm.DB, notifier *NotificationService) *InterviewService {
	return &InterviewService{db: db, notifier: notifier}
}

// Schedule creates or reschedules the interview for an application owned by
// the requesting school. Returns created=true for a fresh interview (201)
// and false for a reschedule (200).
func (s *InterviewService) Schedule(userID, applicationID string, req *dtos.ScheduleInterviewRequest) (bool, error) {
	school, err := schoolForUser(s.db, userID)
	if err != nil {
		return false, err
	}

	var application models.Application
	err = s.db.Preload("Job").Preload("Student").First(&application, "id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("Application not found or you do not have permission for this action.")
		}
		return false, err
	}
	if application.Job.SchoolID != school.ID {
		return false, apperr.NotFound("Application not found or you do not have permission for this action.")
	}
	if application.Status != models.ApplicationShortlisted && application.Status != models.ApplicationInterviewScheduled {
		return false, apperr.InvalidInput("Interview can only be scheduled for shortlisted applicants.")
	}

	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return false, apperr.InvalidInput("Interview date must be in YYYY-MM-DD format.")
	}
	start, err := time.Parse(timeLayout, req.StartTime)
	if err != nil {
		return false, apperr.InvalidInput("Interview startTime must be in HH:MM format.")
	}
	end, err := time.Parse(timeLayout, req.EndTime)
	if err != nil {
		return false, apperr.InvalidInput("Interview endTime must be in HH:MM format.")
	}
	if !end.After(start) {
		return false, apperr.InvalidInput("Interview endTime must be after startTime.")
	}

	// Location comes from the school's address as it is now, not from the
	// job's stored snapshot.
	location := schoolAddress(school)

	var existing models.Interview
	err = s.db.First(&existing, "application_id = ?", application.ID).Error
	switch {
	case err == nil:
		existing.Title = req.Title
		existing.Date = req.Date
		existing.StartTime = req.StartTime
		existing.EndTime = req.EndTime
		existing.Location = location
		if err := s.db.Save(&existing).Error; err != nil {
			return false, err
		}
		s.notifier.NotifyApplicationStatus(application.Student.UserID, application.Job.Title,
			models.ApplicationInterviewScheduled, &existing)
		return false, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		interview := &models.Interview{
			ApplicationID: application.ID,
			Title:         req.Title,
			Date:          req.Date,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Location:      location,
		}
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(interview).Error; err != nil {
				return err
			}
			return tx.Model(&application).Update("status", models.ApplicationInterviewScheduled).Error
		})
		if err != nil {
			return false, err
		}
		s.notifier.NotifyApplicationStatus(application.Student.UserID, application.Job.Title,
			models.ApplicationInterviewScheduled, interview)
		return true, nil

	default:
		return false, err
	}
}

// StudentCalendar lists the student's scheduled interviews.
func (s *InterviewService) StudentCalendar(userID string) ([]dtos.InterviewDetails, error) {
	student, err := studentForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	var applications []models.Application
	err = s.db.Where("student_id = ? AND status = ?", student.ID, models.ApplicationInterviewScheduled).
		Preload("Interview").Preload("Job").Preload("Job.School").Preload("Job.School.User").
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}

	out := make([]dtos.InterviewDetails, 0, len(applications))
	for _, app := range applications {
		if app.Interview == nil {
			continue
		}
		out = append(out, dtos.InterviewDetails{
			ID:         app.Interview.ID,
			Title:      app.Interview.Title,
			SchoolName: app.Job.School.User.Name,
			Date:       app.Interview.Date,
			StartTime:  app.Interview.StartTime,
			EndTime:    app.Interview.EndTime,
			Location:   app.Interview.Location,
		})
	}
	return out, nil
}

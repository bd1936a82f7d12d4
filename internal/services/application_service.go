package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/levelminds/levelminds-backend/internal/apperr"
	"github.com/levelminds/levelminds-backend/internal/dtos"
	"github.com/levelminds/levelminds-backend/internal/models"
)

// ApplicationService governs the application lifecycle:
//
//	applied -> shortlisted -> interview_scheduled
//
// with rejected reachable from any of the three and terminal. The
// shortlisted -> interview_scheduled step happens only through the
// interview scheduler, never through a direct status update.
type ApplicationService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewApplicationService(db *gorm.DB, notifier *NotificationService) *ApplicationService {
	return &ApplicationService{db: db, notifier: notifier}
}

// Apply creates the application in status applied. The unique
// (student, job) index is the arbiter for concurrent duplicate attempts:
// exactly one create wins, the loser gets a conflict.
func (s *ApplicationService) Apply(userID, jobID string, req *dtos.ApplyRequest, resumeURL string) error {
	student, err := studentForUser(s.db, userID)
	if err != nil {
		return err
	}

	var job models.Job
	if err := s.db.Preload("School").First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Job not found.")
		}
		return err
	}
	if job.Status == models.JobStatusClosed || job.ApplicationEndDate.Before(startOfToday()) {
		return apperr.InvalidInput("Applications for this job are closed.")
	}

	application := &models.Application{
		StudentID:       student.ID,
		JobID:           job.ID,
		Status:          models.ApplicationApplied,
		ResumeURL:       resumeURL,
		CoverLetter:     req.CoverLetter,
		Experience:      req.Experience,
		Availability:    req.Availability,
		ApplicationDate: startOfToday(),
	}
	if err := s.db.Create(application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("You have already applied for this job.")
		}
		return err
	}

	studentName := strings.TrimSpace(student.FirstName + " " + student.LastName)
	s.notifier.NotifyNewApplication(job.School.UserID, studentName, job.Title, job.ID)
	return nil
}

// UpdateStatus applies a direct status transition requested by the school
// that owns the job. Every accepted transition notifies the student once.
func (s *ApplicationService) UpdateStatus(userID, applicationID, status string) error {
	school, err := schoolForUser(s.db, userID)
	if err != nil {
		return err
	}

	var application models.Application
	err = s.db.Preload("Job").Preload("Student").First(&application, "id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Application not found or you do not have permission to update it.")
		}
		return err
	}
	if application.Job.SchoolID != school.ID {
		return apperr.NotFound("Application not found or you do not have permission to update it.")
	}

	if err := validateTransition(application.Status, status); err != nil {
		return err
	}

	application.Status = status
	if err := s.db.Save(&application).Error; err != nil {
		return err
	}

	s.notifier.NotifyApplicationStatus(application.Student.UserID, application.Job.Title, status, nil)
	return nil
}

func validateTransition(current, target string) error {
	if current == models.ApplicationRejected {
		return apperr.InvalidInput("Application has already been rejected and cannot be updated.")
	}
	if target == models.ApplicationInterviewScheduled {
		// Reached only through the interview scheduler, which also writes
		// the interview record itself.
		return apperr.InvalidInput("Cannot set interview_scheduled directly. Schedule an interview instead.")
	}
	if current == models.ApplicationInterviewScheduled && target == models.ApplicationShortlisted {
		return apperr.InvalidInput("Cannot mark as shortlisted if interview is already scheduled.")
	}
	return nil
}

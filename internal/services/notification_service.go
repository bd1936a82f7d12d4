package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/levelminds/levelminds-backend/internal/mailer"
	"github.com/levelminds/levelminds-backend/internal/models"
)

// NotificationService writes in-app notifications and dispatches email.
// Both are side effects of already-committed state changes: a failure here
// is logged and swallowed, never propagated to the primary operation.
type NotificationService struct {
	db     *gorm.DB
	mailer mailer.Mailer
	log    *zap.Logger
}

func NewNotificationService(db *gorm.DB, m mailer.Mailer, log *zap.Logger) *NotificationService {
	return &NotificationService{db: db, mailer: m, log: log}
}

func (s *NotificationService) Create(userID, message, ntype, link string) {
	n := &models.Notification{UserID: userID, Message: message, Type: ntype, Link: link}
	if err := s.db.Create(n).Error; err != nil {
		s.log.Error("failed to create notification",
			zap.String("user_id", userID), zap.Error(err))
	}
}

// SendEmail dispatches asynchronously; the caller never waits on delivery.
func (s *NotificationService) SendEmail(to, subject, htmlBody string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.mailer.Send(ctx, to, subject, htmlBody); err != nil {
			s.log.Warn("email delivery failed",
				zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		}
	}()
}

// NotifyApplicationStatus tells the student about an accepted transition on
// their application. Message content is keyed by the new status.
func (s *NotificationService) NotifyApplicationStatus(studentUserID, jobTitle, status string, iv *models.Interview) {
	var message, ntype, link string
	switch status {
	case models.ApplicationShortlisted:
		message = fmt.Sprintf("Your application for '%s' has been shortlisted.", jobTitle)
		ntype = "success"
		link = "/student/dashboard"
	case models.ApplicationInterviewScheduled:
		message = fmt.Sprintf("An interview for your application to '%s' has been scheduled.", jobTitle)
		if iv != nil {
			message = fmt.Sprintf("An interview for your application to '%s' has been scheduled for %s at %s.",
				jobTitle, iv.Date, iv.StartTime)
		}
		ntype = "info"
		link = "/student/calendar"
	case models.ApplicationRejected:
		message = fmt.Sprintf("Your application for '%s' was not successful at this time.", jobTitle)
		ntype = "error"
		link = "/student/dashboard"
	default:
		return
	}
	s.Create(studentUserID, message, ntype, link)
}

// NotifyNewApplication tells the school a student applied to their job.
func (s *NotificationService) NotifyNewApplication(schoolUserID, studentName, jobTitle, jobID string) {
	s.Create(schoolUserID,
		fmt.Sprintf("A new student (%s) applied to your '%s' job.", studentName, jobTitle),
		"info",
		fmt.Sprintf("/school/jobs/%s/applicants", jobID))
}

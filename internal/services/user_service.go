package services

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/levelminds/levelminds-backend/internal/apperr"
	"github.com/levelminds/levelminds-backend/internal/dtos"
	"github.com/levelminds/levelminds-backend/internal/ingest"
	"github.com/levelminds/levelminds-backend/internal/models"
)

// UserService covers admin-driven user management, in particular the bulk
// creation pipeline.
type UserService struct {
	db       *gorm.DB
	notifier *NotificationService
	baseURL  string
}

func NewUserService(db *gorm.DB, notifier *NotificationService, baseURL string) *UserService {
	return &UserService{db: db, notifier: notifier, baseURL: baseURL}
}

func (s *UserService) List(role string, limit, offset int) ([]dtos.UserPreview, int64, error) {
	if role != "" && role != models.RoleAdmin && role != models.RoleSchool && role != models.RoleStudent {
		return nil, 0, apperr.InvalidInput("Invalid role specified. Must be \"student\", \"school\", or \"admin\".")
	}
	if limit <= 0 {
		limit = 10
	}

	q := s.db.Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	previews := make([]dtos.UserPreview, 0, len(users))
	for _, u := range users {
		previews = append(previews, dtos.UserPreview{
			ID:                 u.ID,
			Name:               u.Name,
			Email:              u.Email,
			Role:               u.Role,
			OnboardingComplete: u.IsOnboardingComplete,
		})
	}
	return previews, total, nil
}

// BulkCreate processes each parsed row independently: validate, create the
// user plus its role profile in one transaction, then email the generated
// credentials. A failing row is recorded and skipped; it never rolls back
// or halts the others.
func (s *UserService) BulkCreate(role string, rows []ingest.Row) (*dtos.BulkCreateUsersResult, error) {
	if role != models.RoleStudent && role != models.RoleSchool {
		return nil, apperr.InvalidInput("Invalid or missing user role for bulk creation (must be \"student\" or \"school\").")
	}

	result := &dtos.BulkCreateUsersResult{
		FailedDetails:    []dtos.RowFailure{},
		SuccessfulEmails: []string{},
	}

	for _, row := range rows {
		name := row.Get("name")
		email := row.Get("email")
		if name == "" || email == "" || !isEmail(email) {
			result.FailedCount++
			result.FailedDetails = append(result.FailedDetails, dtos.RowFailure{
				Email:  orNA(email),
				Reason: "Missing name/email or invalid email format.",
			})
			continue
		}

		tempPassword, err := generateTempPassword()
		if err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			var existing models.User
			err := tx.First(&existing, "email = ?", email).Error
			if err == nil {
				return apperr.Conflict("User with this email already exists.")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			user := &models.User{
				Name:     name,
				Email:    email,
				Password: string(hash),
				Role:     role,
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			if role == models.RoleStudent {
				return tx.Create(&models.Student{UserID: user.ID}).Error
			}
			return tx.Create(&models.School{UserID: user.ID}).Error
		})
		if err != nil {
			// The pre-check has a race window; the unique index closes it
			// and a loser surfaces here as a duplicate key.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				err = apperr.Conflict("User with this email already exists.")
			}
			result.FailedCount++
			result.FailedDetails = append(result.FailedDetails, dtos.RowFailure{
				Email:  email,
				Reason: failureReason(err),
			})
			continue
		}

		s.sendCredentials(email, role, tempPassword)
		result.UploadedCount++
		result.SuccessfulEmails = append(result.SuccessfulEmails, email)
	}
	return result, nil
}

func (s *UserService) sendCredentials(email, role, tempPassword string) {
	subject := "Your Student Account Details"
	if role == models.RoleSchool {
		subject = "Your School Account Details"
	}
	body := fmt.Sprintf(`
		<h1>Welcome to Levelminds!</h1>
		<p>A %s profile has been created for you/your institution by the admin.</p>
		<p>Your login details are:</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Temporary Password:</strong> %s</p>
		<p>Please log in <a href="%s/login">here</a> and complete your profile.</p>
	`, role, email, tempPassword, s.baseURL)
	s.notifier.SendEmail(email, subject, body)
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func generateTempPassword() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = passwordAlphabet[int(b[i])%len(passwordAlphabet)]
	}
	return string(b), nil
}

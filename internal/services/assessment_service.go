package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/levelminds/levelminds-backend/internal/apperr"
	"github.com/levelminds/levelminds-backend/internal/dtos"
	"github.com/levelminds/levelminds-backend/internal/ingest"
	"github.com/levelminds/levelminds-backend/internal/models"
)

// AssessmentService is the ledger of student core-skill marks: one row per
// (student, core skill), complete marks only.
type AssessmentService struct {
	db *gorm.DB
}

func NewAssessmentService(db *gorm.DB) *AssessmentService {
	return &AssessmentService{db: db}
}

// Upsert writes the full marks map for one student and core skill.
// Returns created=true when this was a new assessment (201 vs 200).
func (s *AssessmentService) Upsert(studentID string, req *dtos.UploadMarksRequest) (bool, error) {
	var student models.Student
	if err := s.db.Preload("User").First(&student, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("Student not found.")
		}
		return false, err
	}
	if student.User.Role != models.RoleStudent {
		return false, apperr.InvalidInput("Provided user ID does not belong to a student.")
	}

	var skill models.CoreSkill
	if err := s.db.First(&skill, "id = ?", req.SkillID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("Core skill not found.")
		}
		return false, err
	}

	marks := make(map[string]int, len(req.SubSkills))
	defined := definedSubSkills(&skill)
	for _, sub := range req.SubSkills {
		if sub.Mark == nil || *sub.Mark < 0 || *sub.Mark > 10 {
			return false, apperr.InvalidInput("Invalid mark for %q. Marks must be between 0-10.", sub.Name)
		}
		if !defined[sub.Name] {
			return false, apperr.InvalidInput("Subskill %q is not part of the core skill %q.", sub.Name, skill.Name)
		}
		marks[sub.Name] = *sub.Mark
	}
	if err := requireComplete(&skill, marks); err != nil {
		return false, err
	}

	return upsertAssessment(s.db, student.ID, skill.ID, marks)
}

// BulkUploadMarks applies the parsed spreadsheet row by row. Each row either
// upserts a complete assessment inside its own transaction or lands in the
// failure list; no row's outcome affects another's.
func (s *AssessmentService) BulkUploadMarks(coreSkillID string, rows []ingest.Row) (*dtos.BulkMarksResult, error) {
	var skill models.CoreSkill
	if err := s.db.First(&skill, "id = ?", coreSkillID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Core skill not found for the provided ID.")
		}
		return nil, err
	}

	result := &dtos.BulkMarksResult{
		CoreSkillName:     skill.Name,
		FailedDetails:     []dtos.RowFailure{},
		SuccessfulUpdates: []string{},
	}

	for _, row := range rows {
		email := row.Get("email")
		if email == "" || !isEmail(email) {
			result.FailedCount++
			result.FailedDetails = append(result.FailedDetails, dtos.RowFailure{
				Email:  orNA(email),
				Reason: "Missing or invalid student email.",
			})
			continue
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.First(&user, "email = ?", email).Error; err != nil || user.Role != models.RoleStudent {
				return apperr.InvalidInput("User not found or is not a student profile.")
			}
			var student models.Student
			if err := tx.First(&student, "user_id = ?", user.ID).Error; err != nil {
				return apperr.InvalidInput("Student profile not found for this user.")
			}
			marks, err := marksFromRow(&skill, row)
			if err != nil {
				return err
			}
			_, err = upsertAssessment(tx, student.ID, skill.ID, marks)
			return err
		})
		if err != nil {
			result.FailedCount++
			result.FailedDetails = append(result.FailedDetails, dtos.RowFailure{
				Email:  email,
				Reason: failureReason(err),
			})
			continue
		}
		result.UploadedCount++
		result.SuccessfulUpdates = append(result.SuccessfulUpdates, email)
	}
	return result, nil
}

// upsertAssessment is create-first: the unique index decides the race, and a
// duplicate key falls through to a targeted update of the marks map.
func upsertAssessment(db *gorm.DB, studentID, coreSkillID string, marks map[string]int) (bool, error) {
	assessment := &models.StudentCoreSkillAssessment{
		StudentID:     studentID,
		CoreSkillID:   coreSkillID,
		SubSkillMarks: datatypes.NewJSONType(marks),
	}
	err := db.Create(assessment).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, err
	}

	res := db.Model(&models.StudentCoreSkillAssessment{}).
		Where("student_id = ? AND core_skill_id = ?", studentID, coreSkillID).
		Update("sub_skill_marks", datatypes.NewJSONType(marks))
	return false, res.Error
}

func definedSubSkills(skill *models.CoreSkill) map[string]bool {
	defined := make(map[string]bool, len(skill.SubSkills))
	for _, name := range skill.SubSkills {
		defined[name] = true
	}
	return defined
}

// requireComplete enforces exact set equality between the submitted marks
// and the core skill's defined sub-skills.
func requireComplete(skill *models.CoreSkill, marks map[string]int) error {
	var missing []string
	for _, name := range skill.SubSkills {
		if _, ok := marks[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return apperr.InvalidInput("Marks not provided for all expected subskills of %q (missing: %s).",
			skill.Name, strings.Join(missing, ", "))
	}
	return nil
}

// marksFromRow reads one column per defined sub-skill. A row qualifies only
// if every defined sub-skill has an integral mark in [0,10].
func marksFromRow(skill *models.CoreSkill, row ingest.Row) (map[string]int, error) {
	marks := make(map[string]int, len(skill.SubSkills))
	for _, name := range skill.SubSkills {
		raw := row.Get(name)
		if raw == "" {
			return nil, apperr.InvalidInput("No valid marks or not all defined subskills found in the row for this core skill.")
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value != float64(int(value)) || value < 0 || value > 10 {
			return nil, apperr.InvalidInput("No valid marks or not all defined subskills found in the row for this core skill.")
		}
		marks[name] = int(value)
	}
	return marks, nil
}

func failureReason(err error) string {
	if e, ok := apperr.As(err); ok {
		return e.Message
	}
	return fmt.Sprintf("Processing error: %v", err)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

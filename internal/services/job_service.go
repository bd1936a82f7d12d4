package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/levelminds/levelminds-backend/internal/apperr"
	"github.com/levelminds/levelminds-backend/internal/dtos"
	"github.com/levelminds/levelminds-backend/internal/models"
)

// JobService owns the job catalog and the skill-based matching that decides
// which openings a student sees.
type JobService struct {
	db *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

func (s *JobService) Create(userID string, req *dtos.CreateJobRequest) (*models.Job, error) {
	school, err := schoolForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", req.Type).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidInput("Invalid Job Type (Category) ID provided.")
		}
		return nil, err
	}

	endDate, err := time.Parse(dateLayout, req.ApplicationEndDate)
	if err != nil {
		return nil, apperr.InvalidInput("application_end_date must be in YYYY-MM-DD format.")
	}
	if req.SalaryMax != nil && *req.SalaryMax < req.SalaryMin {
		return nil, apperr.InvalidInput("Maximum salary must be greater than or equal to minimum salary.")
	}

	job := &models.Job{
		SchoolID:            school.ID,
		CategoryID:          category.ID,
		Title:               req.Title,
		Location:            schoolAddress(school),
		ApplicationEndDate:  endDate,
		SubjectsToTeach:     req.Subjects,
		MinSalaryLPA:        req.SalaryMin,
		MaxSalaryLPA:        req.SalaryMax,
		JobDescription:      req.Description,
		KeyResponsibilities: req.Responsibilities,
		Requirements:        req.Requirements,
		JobLevel:            req.JobLevel,
		Status:              models.JobStatusOpen,
	}
	if err := s.db.Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// ListAvailable implements the student opportunity feed.
//
// Matching: the student's assessed core-skill set (presence of an assessment
// is enough, the score does not matter) is intersected with every category's
// required-skill set; jobs are restricted to categories with a non-empty
// overlap. No assessments means no matched openings. An explicit category
// filter replaces the computed set entirely.
func (s *JobService) ListAvailable(userID string, f *dtos.JobFilters) ([]models.Job, int64, error) {
	student, err := studentForUser(s.db, userID)
	if err != nil {
		return nil, 0, err
	}

	var matching []string
	if f.Category == "" {
		matching, err = s.matchingCategoryIDs(student.ID)
		if err != nil {
			return nil, 0, err
		}
		if len(matching) == 0 {
			return []models.Job{}, 0, nil
		}
	}

	q := s.db.Model(&models.Job{}).
		Where("status = ?", models.JobStatusOpen).
		Where("application_end_date >= ?", startOfToday())
	q = applyJobFilters(q, f, matching)

	return pageJobs(q, f.Limit, f.Offset)
}

// matchingCategoryIDs loads the (small, admin-curated) category set and
// intersects each category's skills with the student's assessed skills.
func (s *JobService) matchingCategoryIDs(studentID string) ([]string, error) {
	var assessments []models.StudentCoreSkillAssessment
	if err := s.db.Where("student_id = ?", studentID).Find(&assessments).Error; err != nil {
		return nil, err
	}
	assessed := make(map[string]bool, len(assessments))
	for _, a := range assessments {
		assessed[a.CoreSkillID] = true
	}
	if len(assessed) == 0 {
		return nil, nil
	}

	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, err
	}
	var matching []string
	for _, cat := range categories {
		for _, skillID := range cat.CoreSkillIDs {
			if assessed[skillID] {
				matching = append(matching, cat.ID)
				break
			}
		}
	}
	return matching, nil
}

// ListForSchool returns the school's own postings, open and closed.
func (s *JobService) ListForSchool(userID string, f *dtos.JobFilters) ([]models.Job, int64, error) {
	school, err := schoolForUser(s.db, userID)
	if err != nil {
		return nil, 0, err
	}

	q := s.db.Model(&models.Job{}).Where("school_id = ?", school.ID)
	if f.Status != "" {
		if f.Status != models.JobStatusOpen && f.Status != models.JobStatusClosed {
			return nil, 0, apperr.InvalidInput("Status filter must be \"open\" or \"closed\".")
		}
		q = q.Where("status = ?", f.Status)
	}
	q = applyJobFilters(q, f, nil)

	return pageJobs(q, f.Limit, f.Offset)
}

func (s *JobService) Get(jobID string) (*models.Job, error) {
	var job models.Job
	err := s.db.Preload("School").Preload("School.User").Preload("Category").
		First(&job, "id = ?", jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Job not found.")
		}
		return nil, err
	}
	return &job, nil
}

func (s *JobService) UpdateStatus(userID, jobID, status string) error {
	school, err := schoolForUser(s.db, userID)
	if err != nil {
		return err
	}

	var job models.Job
	if err := s.db.First(&job, "id = ? AND school_id = ?", jobID, school.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Job not found or you do not have permission to update it.")
		}
		return err
	}

	job.Status = status
	return s.db.Save(&job).Error
}

// ListApplicants returns every application for an owned job, bucketed the
// way the review board consumes them.
func (s *JobService) ListApplicants(userID, jobID string) (all, shortlisted, interviews []dtos.ApplicantPreview, err error) {
	school, err := schoolForUser(s.db, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	var job models.Job
	if err := s.db.First(&job, "id = ? AND school_id = ?", jobID, school.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, apperr.NotFound("Job not found or you do not have permission to view applicants for it.")
		}
		return nil, nil, nil, err
	}

	var applications []models.Application
	err = s.db.Where("job_id = ?", jobID).
		Preload("Student").Preload("Student.User").Preload("Interview").
		Find(&applications).Error
	if err != nil {
		return nil, nil, nil, err
	}

	all = make([]dtos.ApplicantPreview, 0, len(applications))
	for _, app := range applications {
		preview := dtos.ApplicantPreview{
			ApplicationID: app.ID,
			StudentID:     app.StudentID,
			Name:          strings.TrimSpace(app.Student.FirstName + " " + app.Student.LastName),
			Email:         app.Student.User.Email,
			Phone:         app.Student.Mobile,
			Status:        app.Status,
			Date:          app.ApplicationDate.Format(dateLayout),
			Avatar:        app.Student.ImageURL,
		}
		if app.Interview != nil {
			preview.Interview = &dtos.InterviewDetails{
				Date:      app.Interview.Date,
				StartTime: app.Interview.StartTime,
				EndTime:   app.Interview.EndTime,
				Location:  app.Interview.Location,
			}
		}
		all = append(all, preview)

		switch app.Status {
		case models.ApplicationShortlisted:
			shortlisted = append(shortlisted, preview)
		case models.ApplicationInterviewScheduled:
			shortlisted = append(shortlisted, preview)
			interviews = append(interviews, preview)
		}
	}
	return all, shortlisted, interviews, nil
}

func applyJobFilters(q *gorm.DB, f *dtos.JobFilters, matchingCategoryIDs []string) *gorm.DB {
	if f.Category != "" {
		q = q.Where("category_id = ?", f.Category)
	} else if len(matchingCategoryIDs) > 0 {
		q = q.Where("category_id IN ?", matchingCategoryIDs)
	}
	if f.MinSalaryLPA != nil {
		q = q.Where("min_salary_lpa >= ?", *f.MinSalaryLPA)
	}
	if f.MaxSalaryLPA != nil {
		// A job with no stated maximum matches a ceiling iff its minimum
		// fits under it (missing max treated as equal to min).
		q = q.Where("((max_salary_lpa IS NOT NULL AND max_salary_lpa <= ?) OR (max_salary_lpa IS NULL AND min_salary_lpa <= ?))",
			*f.MaxSalaryLPA, *f.MaxSalaryLPA)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		// subjects_to_teach is a JSON array; the quoted LIKE gives exact
		// membership of the search term.
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(job_description) LIKE ? OR LOWER(key_responsibilities) LIKE ? OR LOWER(requirements) LIKE ? OR subjects_to_teach LIKE ?)",
			like, like, like, like, `%"`+f.Search+`"%`)
	}
	return q
}

func pageJobs(q *gorm.DB, limit, offset int) ([]models.Job, int64, error) {
	if limit <= 0 {
		limit = 10
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).
		Preload("School").Preload("School.User").Preload("Category").
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/levelminds/levelminds-backend/internal/dtos"
	"github.com/levelminds/levelminds-backend/internal/middleware"
	"github.com/levelminds/levelminds-backend/internal/models"
	"github.com/levelminds/levelminds-backend/internal/services"
)

// SchoolHandler serves the recruiter surface: job postings, applicant review
// and interview scheduling.
type SchoolHandler struct {
	jobs         *services.JobService
	applications *services.ApplicationService
	interviews   *services.InterviewService
	log          *zap.Logger
}

func NewSchoolHandler(jobs *services.JobService, applications *services.ApplicationService,
	interviews *services.InterviewService, log *zap.Logger) *SchoolHandler {
	return &SchoolHandler{jobs: jobs, applications: applications, interviews: interviews, log: log}
}

func (h *SchoolHandler) CreateJob(c *gin.Context) {
	var req dtos.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	job, err := h.jobs.Create(c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, "Job created successfully.", gin.H{"jobId": job.ID})
}

func (h *SchoolHandler) ListJobs(c *gin.Context) {
	filters := parseJobFilters(c)
	jobs, total, err := h.jobs.ListForSchool(c.GetString(middleware.ContextUserID), filters)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, "Jobs fetched successfully.", gin.H{
		"jobs": jobSummaries(jobs),
		"meta": dtos.NewPageMeta(total, filters.Limit, filters.Offset),
	})
}

func (h *SchoolHandler) GetJob(c *gin.Context) {
	job, err := h.jobs.Get(c.Param("id"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, "Job fetched successfully.", gin.H{
		"job": gin.H{
			"id":                   job.ID,
			"title":                job.Title,
			"school_name":          job.School.User.Name,
			"school_logo":          job.School.LogoURL,
			"location":             job.Location,
			"job_type":             job.Category.Name,
			"subjects":             job.SubjectsToTeach,
			"min_salary_lpa":       job.MinSalaryLPA,
			"max_salary_lpa":       job.MaxSalaryLPA,
			"application_end_date": job.ApplicationEndDate.Format("2006-01-02"),
			"status":               job.Status,
			"job_description":      job.JobDescription,
			"key_responsibilities": job.KeyResponsibilities,
			"requirements":         job.Requirements,
			"job_level":            job.JobLevel,
		},
	})
}

func (h *SchoolHandler) UpdateJobStatus(c *gin.Context) {
	var req dtos.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	err := h.jobs.UpdateStatus(c.GetString(middleware.ContextUserID), c.Param("id"), req.Status)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, "Job status updated.", nil)
}

// ListApplicants returns the three tabs of the review board in one response.
func (h *SchoolHandler) ListApplicants(c *gin.Context) {
	all, shortlisted, interviews, err := h.jobs.ListApplicants(
		c.GetString(middleware.ContextUserID), c.Param("id"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, "Applicants fetched successfully.", gin.H{
		"all":         emptyIfNil(all),
		"shortlisted": emptyIfNil(shortlisted),
		"interviews":  emptyIfNil(interviews),
	})
}

func (h *SchoolHandler) UpdateApplicationStatus(c *gin.Context) {
	var req dtos.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	err := h.applications.UpdateStatus(
		c.GetString(middleware.ContextUserID), c.Param("id"), req.Status)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, "Application status updated.", nil)
}

func (h *SchoolHandler) ScheduleInterview(c *gin.Context) {
	var req dtos.ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	created, err := h.interviews.Schedule(
		c.GetString(middleware.ContextUserID), c.Param("id"), &req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	if created {
		ok(c, http.StatusCreated, "Interview scheduled successfully.", nil)
		return
	}
	ok(c, http.StatusOK, "Interview updated successfully.", nil)
}

func jobSummaries(jobs []models.Job) []dtos.JobSummary {
	out := make([]dtos.JobSummary, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, dtos.JobSummary{
			ID:                 job.ID,
			Title:              job.Title,
			SchoolName:         job.School.User.Name,
			SchoolLogo:         job.School.LogoURL,
			Location:           job.Location,
			JobType:            job.Category.Name,
			MinSalaryLPA:       job.MinSalaryLPA,
			MaxSalaryLPA:       job.MaxSalaryLPA,
			ApplicationEndDate: job.ApplicationEndDate.Format("2006-01-02"),
			Status:             job.Status,
			JobDescription:     job.JobDescription,
		})
	}
	return out
}

func emptyIfNil(in []dtos.ApplicantPreview) []dtos.ApplicantPreview {
	if in == nil {
		return []dtos.ApplicantPreview{}
	}
	return in
}

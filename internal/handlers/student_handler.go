package handlers

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/levelminds/levelminds-backend/internal/dtos"
	"github.com/levelminds/levelminds-backend/internal/middleware"
	"github.com/levelminds/levelminds-backend/internal/services"
)

// StudentHandler serves the applicant surface: the matched opportunity feed,
// applying, and the interview calendar.
type StudentHandler struct {
	jobs         *services.JobService
	applications *services.ApplicationService
	interviews   *services.InterviewService
	log          *zap.Logger
	uploadDir    string
	baseURL      string
}

func NewStudentHandler(jobs *services.JobService, applications *services.ApplicationService,
	interviews *services.InterviewService, log *zap.Logger, uploadDir, baseURL string) *StudentHandler {
	return &StudentHandler{
		jobs:         jobs,
		applications: applications,
		interviews:   interviews,
		log:          log,
		uploadDir:    uploadDir,
		baseURL:      baseURL,
	}
}

// ListJobs is the matched opportunity feed: open, not past their deadline,
// and in a category overlapping the student's assessed skills.
func (h *StudentHandler) ListJobs(c *gin.Context) {
	filters := parseJobFilters(c)
	jobs, total, err := h.jobs.ListAvailable(c.GetString(middleware.ContextUserID), filters)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, "Jobs fetched successfully.", gin.H{
		"jobs": jobSummaries(jobs),
		"meta": dtos.NewPageMeta(total, filters.Limit, filters.Offset),
	})
}

// Apply submits an application with an optional resume file. The resume is
// stored first; if the application is then refused the file is removed again.
func (h *StudentHandler) Apply(c *gin.Context) {
	var req dtos.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFail(c, err)
		return
	}

	var resumeURL, resumePath string
	if file, err := c.FormFile("resume"); err == nil {
		path, err := saveUpload(c, file, h.uploadDir+"/resumes")
		if err != nil {
			fail(c, h.log, err)
			return
		}
		resumePath = path
		resumeURL = h.baseURL + "/" + path
	}

	err := h.applications.Apply(c.GetString(middleware.ContextUserID), c.Param("id"), &req, resumeURL)
	if err != nil {
		if resumePath != "" {
			if rmErr := os.Remove(resumePath); rmErr != nil {
				h.log.Warn("failed to remove orphaned resume", zap.String("path", resumePath), zap.Error(rmErr))
			}
		}
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, "Application submitted successfully.", nil)
}

func (h *StudentHandler) Calendar(c *gin.Context) {
	interviews, err := h.interviews.StudentCalendar(c.GetString(middleware.ContextUserID))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, "Interview calendar fetched successfully.", gin.H{"interviews": interviews})
}

func parseJobFilters(c *gin.Context) *dtos.JobFilters {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	f := &dtos.JobFilters{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := c.Query("min_salary_lpa"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MinSalaryLPA = &v
		}
	}
	if raw := c.Query("max_salary_lpa"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MaxSalaryLPA = &v
		}
	}
	return f
}

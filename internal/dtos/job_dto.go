package dtos

type CreateJobRequest struct {
	Title              string   `json:"title" binding:"required"`
	Type               string   `json:"type" binding:"required"` // category id
	ApplicationEndDate string   `json:"application_end_date" binding:"required"`
	Subjects           []string `json:"subjects"`
	SalaryMin          float64  `json:"salary_min" binding:"required"`
	SalaryMax          *float64 `json:"salary_max"`
	Description        string   `json:"description" binding:"required"`
	Responsibilities   string   `json:"responsibilities" binding:"required"`
	Requirements       string   `json:"requirements" binding:"required"`
	JobLevel           string   `json:"jobLevel"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open closed"`
}

// JobFilters carries the query parameters of both the student opportunity
// feed and the school's own-listings view.
type JobFilters struct {
	Category     string
	MinSalaryLPA *float64
	MaxSalaryLPA *float64
	Location     string
	Search       string
	Status       string
	Limit        int
	Offset       int
}

type PageMeta struct {
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

func NewPageMeta(total int64, limit, offset int) PageMeta {
	if limit <= 0 {
		limit = 10
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return PageMeta{
		TotalCount:  total,
		TotalPages:  pages,
		CurrentPage: offset/limit + 1,
	}
}

type JobSummary struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	SchoolName         string   `json:"school_name"`
	SchoolLogo         string   `json:"school_logo,omitempty"`
	Location           string   `json:"location"`
	JobType            string   `json:"job_type"`
	MinSalaryLPA       float64  `json:"min_salary_lpa"`
	MaxSalaryLPA       *float64 `json:"max_salary_lpa,omitempty"`
	ApplicationEndDate string   `json:"application_end_date"`
	Status             string   `json:"status"`
	JobDescription     string   `json:"job_description"`
}

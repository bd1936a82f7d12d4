package models

import "time"

const (
	ApplicationApplied            = "applied"
	ApplicationShortlisted        = "shortlisted"
	ApplicationInterviewScheduled = "interview_scheduled"
	ApplicationRejected           = "rejected"
)

// Application is the join entity between a student and a job, with its own
// status lifecycle. One application per (student, job) pair.
type Application struct {
	Base

	StudentID string  `gorm:"not null;uniqueIndex:idx_student_job" json:"student_id"`
	JobID     string  `gorm:"not null;uniqueIndex:idx_student_job" json:"job_id"`
	Student   Student `json:"student,omitempty"`
	Job       Job     `json:"job,omitempty"`

	Status string `gorm:"not null;default:'applied'" json:"status"`

	ResumeURL    string `json:"resume_url"`
	CoverLetter  string `gorm:"type:text" json:"cover_letter"`
	Experience   string `json:"experience"`
	Availability string `json:"availability"`

	ApplicationDate time.Time `gorm:"not null" json:"application_date"`

	Interview *Interview `json:"interview,omitempty"`
}

// Interview is attached to at most one application. Date is YYYY-MM-DD,
// times are HH:MM.
type Interview struct {
	Base

	ApplicationID string `gorm:"uniqueIndex;not null" json:"application_id"`

	Title     string `gorm:"not null" json:"title"`
	Date      string `gorm:"not null" json:"date"`
	StartTime string `gorm:"not null" json:"start_time"`
	EndTime   string `gorm:"not null" json:"end_time"`
	// Snapshot of the school's address at scheduling time.
	Location string `gorm:"not null" json:"location"`
}

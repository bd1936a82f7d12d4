package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type Job struct {
	Base

	SchoolID   string   `gorm:"not null;index" json:"school_id"`
	School     School   `json:"school,omitempty"`
	CategoryID string   `gorm:"not null;index" json:"category_id"`
	Category   Category `json:"category,omitempty"`

	Title string `gorm:"not null" json:"title"`
	// Snapshot of the school's address at posting time; deliberately not
	// re-synced if the school later moves.
	Location           string                      `gorm:"not null" json:"location"`
	ApplicationEndDate time.Time                   `gorm:"not null" json:"application_end_date"`
	SubjectsToTeach    datatypes.JSONSlice[string] `json:"subjects_to_teach"`

	MinSalaryLPA float64  `gorm:"not null" json:"min_salary_lpa"`
	MaxSalaryLPA *float64 `json:"max_salary_lpa"`

	JobDescription      string `gorm:"type:text;not null" json:"job_description"`
	KeyResponsibilities string `gorm:"type:text;not null" json:"key_responsibilities"`
	Requirements        string `gorm:"type:text;not null" json:"requirements"`
	JobLevel            string `json:"job_level"`

	// Open/closed is independent of ApplicationEndDate; consumers check both.
	Status string `gorm:"not null;default:'open'" json:"status"`
}

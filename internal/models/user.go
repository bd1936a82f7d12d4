package models

import "gorm.io/datatypes"

const (
	RoleAdmin   = "admin"
	RoleSchool  = "school"
	RoleStudent = "student"
)

type User struct {
	Base

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `gorm:"not null" json:"name"`
	// Role is fixed at creation time and never changes afterwards.
	Role                 string `gorm:"not null" json:"role"`
	IsOnboardingComplete bool   `gorm:"default:false" json:"onboarding_complete"`
}

// School extends a User with institution profile fields. Everything beyond
// the user link is nullable until onboarding completes.
type School struct {
	Base

	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User   `json:"user,omitempty"`

	LogoURL     string `json:"logo_url"`
	Bio         string `gorm:"type:text" json:"bio"`
	WebsiteLink string `json:"website_link"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

type Student struct {
	Base

	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User   `json:"user,omitempty"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Mobile    string `json:"mobile"`
	About     string `gorm:"type:text" json:"about"`
	ImageURL  string `json:"image_url"`
	// Free-form skills the student adds themselves, distinct from the
	// admin-assessed core skills.
	Skills datatypes.JSONSlice[string] `json:"skills"`
}

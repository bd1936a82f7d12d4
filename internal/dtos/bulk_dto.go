package dtos

// RowFailure identifies a bulk-ingestion row that did not make it, keyed by
// whatever identified the row (usually the email column).
type RowFailure struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

type BulkCreateUsersResult struct {
	UploadedCount    int          `json:"uploaded_count"`
	FailedCount      int          `json:"failed_count"`
	FailedDetails    []RowFailure `json:"failed_details"`
	SuccessfulEmails []string     `json:"successful_emails"`
}

type BulkMarksResult struct {
	CoreSkillName     string       `json:"coreSkillName"`
	UploadedCount     int          `json:"uploaded_count"`
	FailedCount       int          `json:"failed_count"`
	FailedDetails     []RowFailure `json:"failed_details"`
	SuccessfulUpdates []string     `json:"successful_updates"`
}

type UserPreview struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	OnboardingComplete bool   `json:"onboarding_complete"`
}

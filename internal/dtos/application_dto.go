package dtos

type ApplyRequest struct {
	CoverLetter  string `form:"coverLetter"`
	Experience   string `form:"experience"`
	Availability string `form:"availability"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=shortlisted interview_scheduled rejected"`
}

type ScheduleInterviewRequest struct {
	Title     string `json:"title" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

type ApplicantPreview struct {
	ApplicationID string `json:"id"`
	StudentID     string `json:"applicantUserId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	Avatar        string `json:"avatar,omitempty"`

	Interview *InterviewDetails `json:"interviewDetails,omitempty"`
}

type InterviewDetails struct {
	ID         string `json:"id,omitempty"`
	Title      string `json:"title,omitempty"`
	SchoolName string `json:"schoolName,omitempty"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Location   string `json:"location"`
}

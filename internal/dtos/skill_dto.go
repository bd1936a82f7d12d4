package dtos

type CreateCoreSkillRequest struct {
	Name      string   `json:"name" binding:"required"`
	SubSkills []string `json:"subskills" binding:"required,min=1,max=4"`
}

type CreateCategoryRequest struct {
	Name   string   `json:"name" binding:"required"`
	Skills []string `json:"skills"`
}

type SubSkillMark struct {
	Name string `json:"name" binding:"required"`
	// Pointer so an explicit 0 survives binding.
	Mark *int `json:"mark" binding:"required"`
}

type UploadMarksRequest struct {
	SkillID   string         `json:"skill_id" binding:"required"`
	SubSkills []SubSkillMark `json:"subskills" binding:"required,min=1,dive"`
}

type SkillResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	SubSkills []string `json:"subskills"`
}

type SkillRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	CoreSkillIDs []string   `json:"coreSkillIds"`
	Skills       []SkillRef `json:"skills"`
}

package models

import "gorm.io/datatypes"

// CoreSkill is an admin-defined competency with 1 to 4 named sub-skills.
// The sub-skill set is fixed at creation; assessments depend on it staying
// stable, so there is no update path.
type CoreSkill struct {
	Base

	Name      string                      `gorm:"uniqueIndex;not null" json:"name"`
	SubSkills datatypes.JSONSlice[string] `json:"subskills"`
}

// Category classifies jobs and drives matching via the set of core skills
// it references.
type Category struct {
	Base

	Name         string                      `gorm:"uniqueIndex;not null" json:"name"`
	CoreSkillIDs datatypes.JSONSlice[string] `json:"core_skill_ids"`
}

// StudentCoreSkillAssessment records the marks one student received on one
// core skill. At most one row per (student, core skill) pair, enforced by
// the composite unique index.
type StudentCoreSkillAssessment struct {
	Base

	StudentID   string    `gorm:"not null;uniqueIndex:idx_student_core_skill" json:"student_id"`
	CoreSkillID string    `gorm:"not null;uniqueIndex:idx_student_core_skill" json:"core_skill_id"`
	Student     Student   `json:"-"`
	CoreSkill   CoreSkill `json:"core_skill,omitempty"`

	// Marks keyed by sub-skill name, each in [0,10]. Complete by invariant:
	// a mark exists for every sub-skill the core skill defines.
	SubSkillMarks datatypes.JSONType[map[string]int] `json:"sub_skill_marks"`
}

// TotalScore is derived, never stored.
func (a *StudentCoreSkillAssessment) TotalScore() int {
	total := 0
	for _, mark := range a.SubSkillMarks.Data() {
		total += mark
	}
	return total
}

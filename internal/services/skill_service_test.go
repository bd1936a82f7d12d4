package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levelminds/levelminds-backend/internal/apperr"
	"github.com/levelminds/levelminds-backend/internal/dtos"
)

func TestCreateCoreSkillSubSkillCount(t *testing.T) {
	svc := NewSkillService(openTestDB(t))

	_, err := svc.CreateCoreSkill(&dtos.CreateCoreSkillRequest{Name: "Empty", SubSkills: []string{}})
	requireKind(t, err, apperr.KindInvalidInput)

	_, err = svc.CreateCoreSkill(&dtos.CreateCoreSkillRequest{
		Name:      "Too Many",
		SubSkills: []string{"a", "b", "c", "d", "e"},
	})
	requireKind(t, err, apperr.KindInvalidInput)

	one, err := svc.CreateCoreSkill(&dtos.CreateCoreSkillRequest{Name: "One", SubSkills: []string{"a"}})
	require.NoError(t, err)
	assert.Len(t, one.SubSkills, 1)

	four, err := svc.CreateCoreSkill(&dtos.CreateCoreSkillRequest{
		Name:      "Four",
		SubSkills: []string{"a", "b", "c", "d"},
	})
	require.NoError(t, err)
	assert.Len(t, four.SubSkills, 4)
}

func TestCreateCoreSkillDuplicateName(t *testing.T) {
	svc := NewSkillService(openTestDB(t))

	_, err := svc.CreateCoreSkill(&dtos.CreateCoreSkillRequest{Name: "Mathematics", SubSkills: []string{"Algebra"}})
	require.NoError(t, err)

	_, err = svc.CreateCoreSkill(&dtos.CreateCoreSkillRequest{Name: "Mathematics", SubSkills: []string{"Geometry"}})
	requireKind(t, err, apperr.KindConflict)
}

func TestCreateCoreSkillDuplicateSubSkill(t *testing.T) {
	svc := NewSkillService(openTestDB(t))

	_, err := svc.CreateCoreSkill(&dtos.CreateCoreSkillRequest{
		Name:      "Mathematics",
		SubSkills: []string{"Algebra", "algebra"},
	})
	requireKind(t, err, apperr.KindInvalidInput)
}

func TestCreateCategoryValidatesSkillIDs(t *testing.T) {
	db := openTestDB(t)
	svc := NewSkillService(db)
	skill := createCoreSkill(t, db, "Mathematics", "Algebra")

	_, err := svc.CreateCategory(&dtos.CreateCategoryRequest{
		Name:   "STEM",
		Skills: []string{skill.ID, "no-such-id"},
	})
	requireKind(t, err, apperr.KindInvalidInput)

	category, err := svc.CreateCategory(&dtos.CreateCategoryRequest{
		Name:   "STEM",
		Skills: []string{skill.ID, skill.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{skill.ID}, []string(category.CoreSkillIDs))
}

func TestListCategoriesResolvesSkillNames(t *testing.T) {
	db := openTestDB(t)
	svc := NewSkillService(db)
	math := createCoreSkill(t, db, "Mathematics", "Algebra")
	createCategory(t, db, "STEM", math.ID)

	categories, err := svc.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Len(t, categories[0].Skills, 1)
	assert.Equal(t, "Mathematics", categories[0].Skills[0].Name)
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok, "expected an application error, got %v", err)
	assert.Equal(t, kind, e.Kind)
}

package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/levelminds/levelminds-backend/internal/apperr"
	"github.com/levelminds/levelminds-backend/internal/dtos"
	"github.com/levelminds/levelminds-backend/internal/models"
)

// SkillService is the taxonomy store: core skills and the categories that
// reference them.
type SkillService struct {
	db *gorm.DB
}

func NewSkillService(db *gorm.DB) *SkillService {
	return &SkillService{db: db}
}

func (s *SkillService) CreateCoreSkill(req *dtos.CreateCoreSkillRequest) (*models.CoreSkill, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.InvalidInput("Core skill name must not be blank.")
	}
	if len(req.SubSkills) < 1 || len(req.SubSkills) > 4 {
		return nil, apperr.InvalidInput("A core skill must have between 1 and 4 sub-skills.")
	}
	seen := make(map[string]bool, len(req.SubSkills))
	for _, name := range req.SubSkills {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return nil, apperr.InvalidInput("Sub-skill names must not be blank.")
		}
		if seen[strings.ToLower(trimmed)] {
			return nil, apperr.InvalidInput("Duplicate sub-skill %q.", trimmed)
		}
		seen[strings.ToLower(trimmed)] = true
	}

	skill := &models.CoreSkill{Name: req.Name, SubSkills: req.SubSkills}
	if err := s.db.Create(skill).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Core skill with this name already exists.")
		}
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) ListCoreSkills() ([]models.CoreSkill, error) {
	var skills []models.CoreSkill
	if err := s.db.Order("name ASC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (s *SkillService) CreateCategory(req *dtos.CreateCategoryRequest) (*models.Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.InvalidInput("Category name must not be blank.")
	}

	ids := dedupe(req.Skills)
	if len(ids) > 0 {
		var count int64
		if err := s.db.Model(&models.CoreSkill{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return nil, err
		}
		if count != int64(len(ids)) {
			return nil, apperr.InvalidInput("One or more provided core skill IDs are invalid.")
		}
	}

	category := &models.Category{Name: req.Name, CoreSkillIDs: ids}
	if err := s.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Category with this name already exists.")
		}
		return nil, err
	}
	return category, nil
}

// ListCategories resolves each category's skill ids to names for display;
// the join is read-only, nothing resolved is stored back.
func (s *SkillService) ListCategories() ([]dtos.CategoryResponse, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	var skills []models.CoreSkill
	if err := s.db.Find(&skills).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.CoreSkill, len(skills))
	for _, sk := range skills {
		byID[sk.ID] = sk
	}

	out := make([]dtos.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp := dtos.CategoryResponse{
			ID:           cat.ID,
			Name:         cat.Name,
			CoreSkillIDs: cat.CoreSkillIDs,
			Skills:       make([]dtos.SkillRef, 0, len(cat.CoreSkillIDs)),
		}
		for _, id := range cat.CoreSkillIDs {
			if sk, ok := byID[id]; ok {
				resp.Skills = append(resp.Skills, dtos.SkillRef{ID: sk.ID, Name: sk.Name})
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

package handlers

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/levelminds/levelminds-backend/internal/dtos"
	"github.com/levelminds/levelminds-backend/internal/ingest"
	"github.com/levelminds/levelminds-backend/internal/services"
)

// AdminHandler serves the admin surface: skill taxonomy, assessments and
// bulk ingestion.
type AdminHandler struct {
	skills      *services.SkillService
	assessments *services.AssessmentService
	users       *services.UserService
	log         *zap.Logger
	uploadDir   string
}

func NewAdminHandler(skills *services.SkillService, assessments *services.AssessmentService,
	users *services.UserService, log *zap.Logger, uploadDir string) *AdminHandler {
	return &AdminHandler{
		skills:      skills,
		assessments: assessments,
		users:       users,
		log:         log,
		uploadDir:   uploadDir,
	}
}

func (h *AdminHandler) CreateCoreSkill(c *gin.Context) {
	var req dtos.CreateCoreSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	skill, err := h.skills.CreateCoreSkill(&req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, "Core skill created successfully.", gin.H{
		"skill_id":  skill.ID,
		"name":      skill.Name,
		"subskills": skill.SubSkills,
	})
}

func (h *AdminHandler) ListCoreSkills(c *gin.Context) {
	skills, err := h.skills.ListCoreSkills()
	if err != nil {
		fail(c, h.log, err)
		return
	}
	out := make([]dtos.SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, dtos.SkillResponse{ID: s.ID, Name: s.Name, SubSkills: s.SubSkills})
	}
	ok(c, http.StatusOK, "Core skills fetched successfully.", gin.H{"skills": out})
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req dtos.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	category, err := h.skills.CreateCategory(&req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, "Category created successfully.", gin.H{
		"category_id": category.ID,
		"name":        category.Name,
		"skills":      category.CoreSkillIDs,
	})
}

func (h *AdminHandler) ListCategories(c *gin.Context) {
	categories, err := h.skills.ListCategories()
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, "Categories fetched successfully.", gin.H{"categories": categories})
}

// UploadMarks records the full marks map for one student and one core skill.
func (h *AdminHandler) UploadMarks(c *gin.Context) {
	var req dtos.UploadMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	created, err := h.assessments.Upsert(c.Param("id"), &req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	if created {
		ok(c, http.StatusCreated, "Core skill marks uploaded successfully.", nil)
		return
	}
	ok(c, http.StatusOK, "Core skill marks updated successfully.", nil)
}

// BulkUploadMarks ingests a spreadsheet of per-student marks for one core
// skill. Row failures are reported in the body, never as an HTTP error.
func (h *AdminHandler) BulkUploadMarks(c *gin.Context) {
	rows, cleanup, err := h.parseSpreadsheet(c)
	if err != nil {
		return
	}
	defer cleanup()

	result, err := h.assessments.BulkUploadMarks(c.Param("id"), rows)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, "Bulk marks upload processed.", gin.H{"result": result})
}

// BulkCreateUsers ingests a spreadsheet of name/email rows and provisions
// accounts with the role given in the form.
func (h *AdminHandler) BulkCreateUsers(c *gin.Context) {
	rows, cleanup, err := h.parseSpreadsheet(c)
	if err != nil {
		return
	}
	defer cleanup()

	result, err := h.users.BulkCreate(c.PostForm("role"), rows)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, "Bulk user creation processed.", gin.H{"result": result})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	users, total, err := h.users.List(c.Query("role"), limit, offset)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, "Users fetched successfully.", gin.H{
		"users": users,
		"meta":  dtos.NewPageMeta(total, limit, offset),
	})
}

// parseSpreadsheet stages the uploaded workbook on disk, parses it, and hands
// back the rows plus a cleanup func for the temporary file. On failure it has
// already written the response.
func (h *AdminHandler) parseSpreadsheet(c *gin.Context) ([]ingest.Row, func(), error) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "No spreadsheet file uploaded. Use the \"file\" form field.",
		})
		return nil, nil, err
	}

	path, err := saveUpload(c, file, h.uploadDir)
	if err != nil {
		fail(c, h.log, err)
		return nil, nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil {
			h.log.Warn("failed to remove temporary upload", zap.String("path", path), zap.Error(err))
		}
	}

	src, err := os.Open(path)
	if err != nil {
		cleanup()
		fail(c, h.log, err)
		return nil, nil, err
	}
	defer src.Close()

	rows, err := ingest.ParseWorkbook(src)
	if err != nil {
		cleanup()
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "Failed to parse the uploaded spreadsheet.",
		})
		return nil, nil, err
	}
	return rows, cleanup, nil
}

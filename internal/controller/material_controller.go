package controller

import (
	"remedial_edu_backend/internal/service"
	"remedial_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	Materials *service.MaterialService
}

func NewMaterialController(materials *service.MaterialService) *MaterialController {
	return &MaterialController{Materials: materials}
}

// Upload godoc
// @Summary Upload a learning material file
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "the material"
// @Param title formData string true "title"
// @Success 201 {object} model.LearningMaterial
// @Security BearerAuth
// @Router /api/teacher/materials [post]
func (ctl *MaterialController) Upload(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	title := c.PostForm("title")
	if title == "" {
		util.BadRequest(c, "title is required")
		return
	}

	meta := service.MaterialUpload{
		Title:       title,
		Description: c.PostForm("description"),
		UploadedBy:  claims.UserID,
	}
	if id := util.MustParseUint(c.PostForm("subjectId")); id != 0 {
		meta.SubjectID = &id
	}
	if id := util.MustParseUint(c.PostForm("phonemicLevelId")); id != 0 {
		meta.PhonemicLevelID = &id
	}

	m, err := ctl.Materials.Upload(c.Request.Context(), meta, fh)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Created(c, m)
}

func (ctl *MaterialController) Get(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid material id")
		return
	}

	m, err := ctl.Materials.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, m)
}

// List filters by subject and phonemic level so a teacher can pull the set
// matching a student's placement.
func (ctl *MaterialController) List(c *gin.Context) {
	page, limit := pagination(c)
	subjectID := util.MustParseUint(c.Query("subjectId"))
	levelID := util.MustParseUint(c.Query("phonemicLevelId"))

	items, total, err := ctl.Materials.List(subjectID, levelID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"items": items, "total": total, "page": page, "limit": limit})
}

func (ctl *MaterialController) Delete(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid material id")
		return
	}

	if err := ctl.Materials.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	util.OK(c, nil)
}

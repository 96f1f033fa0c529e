package controller

import (
	"strconv"

	"remedial_edu_backend/internal/model"
	"remedial_edu_backend/internal/service"
	"remedial_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AssessmentController is the teacher-facing authoring surface.
type AssessmentController struct {
	Assessments *service.AssessmentService
}

func NewAssessmentController(assessments *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Assessments: assessments}
}

// Create godoc
// @Summary Create an assessment with its questions
// @Tags assessments
// @Accept json
// @Produce json
// @Param body body service.AssessmentRequest true "assessment"
// @Success 201 {object} model.Assessment
// @Security BearerAuth
// @Router /api/teacher/assessments [post]
func (ctl *AssessmentController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	a, err := ctl.Assessments.Create(claims.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Created(c, a)
}

func (ctl *AssessmentController) Update(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	var req service.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	a, err := ctl.Assessments.Update(id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, a)
}

type publishRequest struct {
	IsPublished *bool `json:"isPublished" binding:"required"`
}

// SetPublished opens or closes student access without touching content.
func (ctl *AssessmentController) SetPublished(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	a, err := ctl.Assessments.SetPublished(id, *req.IsPublished)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, a)
}

func (ctl *AssessmentController) Delete(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	if err := ctl.Assessments.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	util.OK(c, nil)
}

func (ctl *AssessmentController) Get(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	a, err := ctl.Assessments.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, a)
}

// List godoc
// @Summary List assessments, newest first
// @Tags assessments
// @Produce json
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Param mine query bool false "only the caller's assessments"
// @Security BearerAuth
// @Router /api/teacher/assessments [get]
func (ctl *AssessmentController) List(c *gin.Context) {
	page, limit := pagination(c)

	var createdBy uint
	if c.Query("mine") == "true" {
		if claims := util.GetUserFromContext(c); claims != nil {
			createdBy = claims.UserID
		}
	}

	items, total, err := ctl.Assessments.List(page, limit, createdBy)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"items": items, "total": total, "page": page, "limit": limit})
}

// ListAttempts returns every attempt on one assessment for review.
func (ctl *AssessmentController) ListAttempts(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	attempts, err := ctl.Assessments.ListAttempts(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if attempts == nil {
		attempts = []model.Attempt{}
	}
	util.Success(c, attempts)
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

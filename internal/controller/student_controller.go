package controller

import (
	"remedial_edu_backend/internal/service"
	"remedial_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	Students *service.StudentService
}

func NewStudentController(students *service.StudentService) *StudentController {
	return &StudentController{Students: students}
}

func (ctl *StudentController) Create(c *gin.Context) {
	var req service.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	student, err := ctl.Students.Create(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Created(c, student)
}

func (ctl *StudentController) Update(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid student id")
		return
	}

	var req service.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	student, err := ctl.Students.Update(id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, student)
}

func (ctl *StudentController) Delete(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid student id")
		return
	}

	if err := ctl.Students.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	util.OK(c, nil)
}

func (ctl *StudentController) Get(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid student id")
		return
	}

	student, err := ctl.Students.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, student)
}

func (ctl *StudentController) List(c *gin.Context) {
	page, limit := pagination(c)

	items, total, err := ctl.Students.List(page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"items": items, "total": total, "page": page, "limit": limit})
}

type phonemicLevelRequest struct {
	SubjectID       uint `json:"subjectId" binding:"required"`
	PhonemicLevelID uint `json:"phonemicLevelId" binding:"required"`
}

// SetPhonemicLevel records the student's assessed level for one subject,
// replacing any earlier assessment for that subject.
func (ctl *StudentController) SetPhonemicLevel(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid student id")
		return
	}

	var req phonemicLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	if err := ctl.Students.SetPhonemicLevel(id, req.SubjectID, req.PhonemicLevelID, claims.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	util.OK(c, nil)
}

func (ctl *StudentController) PhonemicLevels(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid student id")
		return
	}

	levels, err := ctl.Students.PhonemicLevels(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, levels)
}

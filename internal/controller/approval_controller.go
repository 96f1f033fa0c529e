package controller

import (
	"remedial_edu_backend/internal/model"
	"remedial_edu_backend/internal/service"
	"remedial_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ApprovalController struct {
	Approvals *service.ApprovalService
}

func NewApprovalController(approvals *service.ApprovalService) *ApprovalController {
	return &ApprovalController{Approvals: approvals}
}

// Submit files a request needing principal sign-off (e.g. an attempt reset).
func (ctl *ApprovalController) Submit(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.ApprovalCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	ar, err := ctl.Approvals.Submit(claims.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Created(c, ar)
}

// List shows requests. Teachers see their own; the principal sees everything.
func (ctl *ApprovalController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var requestedBy uint
	if claims.Role == model.Teacher || claims.Role == model.MasterTeacher {
		requestedBy = claims.UserID
	}

	status := model.ApprovalStatus(c.Query("status"))
	items, err := ctl.Approvals.List(status, requestedBy)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, items)
}

func (ctl *ApprovalController) Get(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid approval id")
		return
	}

	ar, err := ctl.Approvals.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, ar)
}

type decisionRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	Note    string `json:"note"`
}

// Decide is principal-only; approving an attempt reset deletes the attempt.
func (ctl *ApprovalController) Decide(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid approval id")
		return
	}

	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	ar, err := ctl.Approvals.Decide(id, claims.UserID, *req.Approve, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, ar)
}

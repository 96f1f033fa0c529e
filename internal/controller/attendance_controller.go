package controller

import (
	"remedial_edu_backend/internal/service"
	"remedial_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttendanceController struct {
	Attendance *service.AttendanceService
}

func NewAttendanceController(attendance *service.AttendanceService) *AttendanceController {
	return &AttendanceController{Attendance: attendance}
}

// Record upserts one student's attendance for a session day.
func (ctl *AttendanceController) Record(c *gin.Context) {
	var req service.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	rec, err := ctl.Attendance.Record(req, claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, rec)
}

// History lists attendance, filterable by student and date range.
func (ctl *AttendanceController) History(c *gin.Context) {
	studentID := util.MustParseUint(c.Query("studentId"))

	recs, err := ctl.Attendance.History(studentID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, recs)
}

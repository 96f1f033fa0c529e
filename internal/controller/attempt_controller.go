package controller

import (
	"remedial_edu_backend/internal/service"
	"remedial_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AttemptController exposes the student-facing attempt lifecycle plus the
// teacher grading endpoints.
type AttemptController struct {
	Attempts *service.AttemptService
}

func NewAttemptController(attempts *service.AttemptService) *AttemptController {
	return &AttemptController{Attempts: attempts}
}

// Access godoc
// @Summary Open an assessment by quiz code and resolve the student's attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param body body service.AccessRequest true "quiz code plus student id or LRN"
// @Success 200 {object} map[string]interface{}
// @Router /api/assessments/access [post]
func (ctl *AttemptController) Access(c *gin.Context) {
	var req service.AccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.Attempts.Access(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	util.OK(c, gin.H{
		"assessment":  result.Assessment,
		"attemptId":   result.Attempt.ID,
		"status":      result.Attempt.Status,
		"studentId":   result.Student.ID,
		"studentName": result.Student.DisplayName(),
	})
}

// RecordAnswer godoc
// @Summary Record (or overwrite) one answer on an open attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param attemptId path int true "attempt id"
// @Param body body service.AnswerRequest true "answer"
// @Success 200 {object} map[string]interface{}
// @Router /api/assessments/attempts/{attemptId}/answers [post]
func (ctl *AttemptController) RecordAnswer(c *gin.Context) {
	attemptID := util.MustParseUint(c.Param("attemptId"))
	if attemptID == 0 {
		util.BadRequest(c, "invalid attempt id")
		return
	}

	var req service.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	answer, err := ctl.Attempts.RecordAnswer(c.Request.Context(), attemptID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	util.OK(c, gin.H{
		"questionId": answer.QuestionID,
		"isCorrect":  answer.IsCorrect,
		"score":      answer.Score,
		"pending":    answer.Pending(),
	})
}

// Submit godoc
// @Summary Submit an attempt and freeze its score
// @Tags attempts
// @Produce json
// @Param attemptId path int true "attempt id"
// @Success 200 {object} service.SubmitResult
// @Router /api/assessments/attempts/{attemptId}/submit [post]
func (ctl *AttemptController) Submit(c *gin.Context) {
	attemptID := util.MustParseUint(c.Param("attemptId"))
	if attemptID == 0 {
		util.BadRequest(c, "invalid attempt id")
		return
	}

	result, err := ctl.Attempts.Submit(c.Request.Context(), attemptID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	util.OK(c, gin.H{
		"status":         result.Status,
		"studentName":    result.StudentName,
		"totalScore":     result.TotalScore,
		"correctCount":   result.CorrectCount,
		"incorrectCount": result.IncorrectCount,
		"totalQuestions": result.TotalQuestions,
	})
}

type gradeRequest struct {
	QuestionID uint  `json:"questionId" binding:"required"`
	IsCorrect  *bool `json:"isCorrect" binding:"required"`
}

// GradeAnswer resolves one manually-reviewed answer on a submitted attempt.
func (ctl *AttemptController) GradeAnswer(c *gin.Context) {
	attemptID := util.MustParseUint(c.Param("attemptId"))
	if attemptID == 0 {
		util.BadRequest(c, "invalid attempt id")
		return
	}

	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	answer, err := ctl.Attempts.GradeAnswer(attemptID, req.QuestionID, *req.IsCorrect)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, answer)
}

// FinalizeGrading moves a fully reviewed attempt from submitted to graded.
func (ctl *AttemptController) FinalizeGrading(c *gin.Context) {
	attemptID := util.MustParseUint(c.Param("attemptId"))
	if attemptID == 0 {
		util.BadRequest(c, "invalid attempt id")
		return
	}

	result, err := ctl.Attempts.FinalizeGrading(attemptID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, result)
}

// Detail returns the attempt with its answers for teacher review.
func (ctl *AttemptController) Detail(c *gin.Context) {
	attemptID := util.MustParseUint(c.Param("attemptId"))
	if attemptID == 0 {
		util.BadRequest(c, "invalid attempt id")
		return
	}

	attempt, err := ctl.Attempts.AttemptDetail(attemptID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, attempt)
}

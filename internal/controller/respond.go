package controller

import (
	"errors"

	"remedial_edu_backend/internal/service"
	"remedial_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized is logged and answered as a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizCodeRequired),
		errors.Is(err, util.ErrStudentRefRequired),
		errors.Is(err, util.ErrAnswerRequired),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrBadQuestion),
		errors.Is(err, service.ErrBadChoiceSetup),
		errors.Is(err, service.ErrBadAttendance),
		errors.Is(err, service.ErrBadApproval):
		util.BadRequest(c, err.Error())

	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(c, 401, err.Error())

	case errors.Is(err, util.ErrAssessmentNotPublished),
		errors.Is(err, util.ErrInvalidQRToken),
		errors.Is(err, util.ErrNotYetOpen),
		errors.Is(err, util.ErrWindowClosed),
		errors.Is(err, util.ErrWrongPhonemicLevel):
		util.Error(c, 403, err.Error())

	case errors.Is(err, util.ErrAssessmentNotFound),
		errors.Is(err, util.ErrStudentNotFound),
		errors.Is(err, util.ErrAttemptNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrChoiceNotFound),
		errors.Is(err, util.ErrAnswerNotFound),
		errors.Is(err, util.ErrApprovalNotFound),
		errors.Is(err, util.ErrMaterialNotFound):
		util.NotFound(c, err.Error())

	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrDuplicateIdentifier),
		errors.Is(err, util.ErrAlreadyTaken),
		errors.Is(err, util.ErrAttemptCreationBusy),
		errors.Is(err, util.ErrAttemptNotActive),
		errors.Is(err, util.ErrAssessmentLocked),
		errors.Is(err, util.ErrAttemptNotSubmitted),
		errors.Is(err, util.ErrAnswerNotPending),
		errors.Is(err, util.ErrAnswersPending),
		errors.Is(err, util.ErrApprovalDecided):
		util.Conflict(c, err.Error())

	default:
		util.LogInternalError(c, err)
	}
}

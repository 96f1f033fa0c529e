package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAssessmentNotFound     = errors.New("assessment not found")
	ErrAssessmentNotPublished = errors.New("assessment is not published")
	ErrAssessmentLocked       = errors.New("assessment already has submitted attempts and can no longer be edited")
	ErrInvalidQRToken         = errors.New("invalid QR token")
	ErrNotYetOpen             = errors.New("assessment is not yet open")
	ErrWindowClosed           = errors.New("assessment window has closed")

	ErrStudentNotFound     = errors.New("student not found")
	ErrDuplicateIdentifier = errors.New("duplicate student identifier")
	ErrWrongPhonemicLevel  = errors.New("student phonemic level does not match this assessment")

	ErrQuizCodeRequired   = errors.New("quiz code is required")
	ErrStudentRefRequired = errors.New("a student id or LRN is required")

	ErrAlreadyTaken        = errors.New("assessment already taken")
	ErrAttemptCreationBusy = errors.New("attempt is being created, please retry")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrAttemptNotActive    = errors.New("attempt no longer active")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrChoiceNotFound      = errors.New("choice not found")
	ErrAnswerRequired      = errors.New("an answer is required")

	ErrAttemptNotSubmitted = errors.New("attempt has not been submitted")
	ErrAnswerNotFound      = errors.New("answer not found")
	ErrAnswerNotPending    = errors.New("answer is not pending manual review")
	ErrAnswersPending      = errors.New("attempt still has answers pending manual review")

	ErrApprovalNotFound = errors.New("approval request not found")
	ErrApprovalDecided  = errors.New("approval request already decided")

	ErrMaterialNotFound = errors.New("learning material not found")
)

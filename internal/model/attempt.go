package model

import "time"

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSubmitted  AttemptStatus = "submitted"
	AttemptGraded     AttemptStatus = "graded"
)

// Closed reports whether the attempt has left in_progress. The transition is
// one-way: in_progress -> submitted -> graded.
func (s AttemptStatus) Closed() bool {
	return s == AttemptSubmitted || s == AttemptGraded
}

// swagger:model Attempt
type Attempt struct {
	BaseModel
	AssessmentID uint          `gorm:"index:idx_attempt_pair;type:bigint unsigned;not null" json:"assessmentId"`
	StudentID    uint          `gorm:"index:idx_attempt_pair;type:bigint unsigned;not null" json:"studentId"`
	LRN          string        `gorm:"size:50" json:"lrn"` // denormalized fallback identifier
	Status       AttemptStatus `gorm:"size:20;default:'in_progress'" json:"status"`
	StartedAt    time.Time     `json:"startedAt"`
	SubmittedAt  *time.Time    `json:"submittedAt,omitempty"`
	TotalScore   int           `gorm:"default:0" json:"totalScore"`
	Answers      []Answer      `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (Attempt) TableName() string {
	return "assessment_attempts"
}

// swagger:model Answer
type Answer struct {
	BaseModel
	AttemptID        uint   `gorm:"uniqueIndex:idx_attempt_question;type:bigint unsigned;not null" json:"attemptId"`
	QuestionID       uint   `gorm:"uniqueIndex:idx_attempt_question;type:bigint unsigned;not null" json:"questionId"`
	SelectedChoiceID *uint  `gorm:"type:bigint unsigned" json:"selectedChoiceId,omitempty"`
	AnswerText       string `gorm:"type:text" json:"answerText"`
	// IsCorrect is nil while a short answer awaits manual review.
	IsCorrect *bool `json:"isCorrect"`
	Score     int   `gorm:"default:0" json:"score"`
}

func (Answer) TableName() string {
	return "assessment_student_answers"
}

func (a *Answer) Pending() bool {
	return a.IsCorrect == nil
}

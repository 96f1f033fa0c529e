package model

import "time"

// swagger:model Assessment
type Assessment struct {
	BaseModel
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	SubjectID       *uint      `gorm:"index;type:bigint unsigned" json:"subjectId,omitempty"`
	GradeLevel      int        `gorm:"default:0" json:"gradeLevel"`
	PhonemicLevelID *uint      `gorm:"type:bigint unsigned" json:"phonemicLevelId,omitempty"`
	StartTime       *time.Time `json:"startTime,omitempty"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	IsPublished     bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
	AccessCode      string     `gorm:"size:12;uniqueIndex;not null" json:"accessCode"`
	QRToken         string     `gorm:"size:36" json:"qrToken,omitempty"`
	CreatedBy       uint       `gorm:"index;type:bigint unsigned" json:"createdBy"`
	Questions       []Question `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

type AutoGradePolicy string

const (
	// StrictZero grades a short answer with no configured correct text as
	// incorrect with zero score.
	StrictZero AutoGradePolicy = "strict_zero"
	// ManualReview leaves such answers ungraded until a teacher decides.
	ManualReview AutoGradePolicy = "manual_review"
)

// swagger:model Question
type Question struct {
	BaseModel
	AssessmentID    uint            `gorm:"index;type:bigint unsigned;not null" json:"assessmentId"`
	QuestionType    QuestionType    `gorm:"size:30;not null" json:"questionType"`
	Prompt          string          `gorm:"type:text;not null" json:"prompt"`
	Points          int             `gorm:"default:1" json:"points"`
	Order           int             `gorm:"default:0" json:"order"`
	CorrectAnswer   string          `gorm:"type:text" json:"correctAnswer,omitempty"`
	CaseSensitive   bool            `gorm:"default:false" json:"caseSensitive"`
	AutoGradePolicy AutoGradePolicy `gorm:"size:20;default:'strict_zero'" json:"autoGradePolicy"`
	Choices         []Choice        `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

func (Question) TableName() string {
	return "assessment_questions"
}

// swagger:model Choice
type Choice struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (Choice) TableName() string {
	return "assessment_question_choices"
}

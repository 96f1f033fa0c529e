package model

// LearningMaterial is a teacher-uploaded file (reading passage, worksheet,
// practice audio/video) classified by subject and phonemic level.
type LearningMaterial struct {
	BaseModel
	Title           string `gorm:"size:255;not null" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	SubjectID       *uint  `gorm:"index;type:bigint unsigned" json:"subjectId,omitempty"`
	PhonemicLevelID *uint  `gorm:"type:bigint unsigned" json:"phonemicLevelId,omitempty"`
	ObjectKey       string `gorm:"size:255;not null" json:"-"`
	URL             string `gorm:"size:512" json:"url"`
	ContentType     string `gorm:"size:100" json:"contentType"`
	SizeBytes       int64  `gorm:"default:0" json:"sizeBytes"`
	// DurationSeconds is probed with ffmpeg for audio/video uploads, 0 otherwise.
	DurationSeconds float64 `gorm:"default:0" json:"durationSeconds"`
	UploadedBy      uint    `gorm:"index;type:bigint unsigned" json:"uploadedBy"`
}

func (LearningMaterial) TableName() string {
	return "learning_materials"
}

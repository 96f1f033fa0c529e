package model

// Subject is a seeded lookup (English, Filipino, ...).
type Subject struct {
	BaseModel
	Code string `gorm:"size:30;unique;not null" json:"code"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (Subject) TableName() string {
	return "subjects"
}

// PhonemicLevel is a seeded reading-proficiency lookup, ordered by Rank.
type PhonemicLevel struct {
	BaseModel
	Code string `gorm:"size:30;unique;not null" json:"code"`
	Name string `gorm:"size:100;not null" json:"name"`
	Rank int    `gorm:"default:0" json:"rank"`
}

func (PhonemicLevel) TableName() string {
	return "phonemic_levels"
}

// swagger:model Student
type Student struct {
	BaseModel
	FirstName   string              `gorm:"size:100;not null" json:"firstName"`
	LastName    string              `gorm:"size:100;not null" json:"lastName"`
	GradeLevel  int                 `gorm:"default:0" json:"gradeLevel"`
	Section     string              `gorm:"size:50" json:"section"`
	Identifiers []StudentIdentifier `gorm:"foreignKey:StudentID" json:"identifiers,omitempty"`
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) DisplayName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// LRN returns the student's learner reference number alias, if recorded.
func (s *Student) LRN() string {
	for _, id := range s.Identifiers {
		if id.Kind == IdentifierLRN {
			return id.Value
		}
	}
	return ""
}

type IdentifierKind string

const (
	IdentifierLRN IdentifierKind = "lrn"
)

// StudentIdentifier is an external alias for a student. The value is
// deliberately not unique: imported rosters contain duplicate LRNs and the
// resolver must surface them as conflicts instead of picking one.
type StudentIdentifier struct {
	BaseModel
	StudentID uint           `gorm:"index;type:bigint unsigned;not null" json:"studentId"`
	Kind      IdentifierKind `gorm:"size:20;not null;index:idx_identifier_lookup" json:"kind"`
	Value     string         `gorm:"size:50;not null;index:idx_identifier_lookup" json:"value"`
}

func (StudentIdentifier) TableName() string {
	return "student_identifiers"
}

// StudentPhonemicLevel records the student's assessed level per subject.
type StudentPhonemicLevel struct {
	BaseModel
	StudentID       uint `gorm:"uniqueIndex:idx_student_subject;type:bigint unsigned;not null" json:"studentId"`
	SubjectID       uint `gorm:"uniqueIndex:idx_student_subject;type:bigint unsigned;not null" json:"subjectId"`
	PhonemicLevelID uint `gorm:"type:bigint unsigned;not null" json:"phonemicLevelId"`
	AssessedBy      uint `gorm:"type:bigint unsigned" json:"assessedBy"`
}

func (StudentPhonemicLevel) TableName() string {
	return "student_phonemic_levels"
}

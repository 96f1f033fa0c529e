package service

import (
	"errors"
	"strings"

	"remedial_edu_backend/internal/model"
	"remedial_edu_backend/internal/repository"
	"remedial_edu_backend/internal/util"

	"gorm.io/gorm"
)

type StudentService struct {
	Repo *repository.StudentRepository
}

func NewStudentService(repo *repository.StudentRepository) *StudentService {
	return &StudentService{Repo: repo}
}

type StudentRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	GradeLevel int    `json:"gradeLevel"`
	Section    string `json:"section"`
	LRN        string `json:"lrn"`
}

func (s *StudentService) Create(req StudentRequest) (*model.Student, error) {
	student := &model.Student{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		GradeLevel: req.GradeLevel,
		Section:    req.Section,
	}
	if lrn := strings.TrimSpace(req.LRN); lrn != "" {
		student.Identifiers = []model.StudentIdentifier{
			{Kind: model.IdentifierLRN, Value: lrn},
		}
	}
	if err := s.Repo.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) Update(id uint, req StudentRequest) (*model.Student, error) {
	student, err := s.find(id)
	if err != nil {
		return nil, err
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.GradeLevel = req.GradeLevel
	student.Section = req.Section
	if err := s.Repo.Update(student); err != nil {
		return nil, err
	}

	if lrn := strings.TrimSpace(req.LRN); lrn != "" && student.LRN() != lrn {
		ident := &model.StudentIdentifier{
			StudentID: student.ID,
			Kind:      model.IdentifierLRN,
			Value:     lrn,
		}
		if err := s.Repo.AddIdentifier(ident); err != nil {
			return nil, err
		}
	}
	return s.find(id)
}

func (s *StudentService) Delete(id uint) error {
	if _, err := s.find(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *StudentService) Get(id uint) (*model.Student, error) {
	return s.find(id)
}

func (s *StudentService) List(page, limit int) ([]model.Student, int64, error) {
	return s.Repo.List(page, limit)
}

// SetPhonemicLevel records the student's assessed level for a subject.
func (s *StudentService) SetPhonemicLevel(studentID, subjectID, levelID, assessedBy uint) error {
	if _, err := s.find(studentID); err != nil {
		return err
	}
	return s.Repo.SetPhonemicLevel(&model.StudentPhonemicLevel{
		StudentID:       studentID,
		SubjectID:       subjectID,
		PhonemicLevelID: levelID,
		AssessedBy:      assessedBy,
	})
}

func (s *StudentService) PhonemicLevels(studentID uint) ([]model.StudentPhonemicLevel, error) {
	if _, err := s.find(studentID); err != nil {
		return nil, err
	}
	return s.Repo.LevelsForStudent(studentID)
}

func (s *StudentService) find(id uint) (*model.Student, error) {
	student, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return student, nil
}

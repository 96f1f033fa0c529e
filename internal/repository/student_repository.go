package repository

import (
	"remedial_edu_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

func (r *StudentRepository) Update(student *model.Student) error {
	return r.DB.Save(student).Error
}

func (r *StudentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&model.StudentIdentifier{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.StudentPhonemicLevel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Student{}, id).Error
	})
}

func (r *StudentRepository) FindByID(id uint) (*model.Student, error) {
	var s model.Student
	if err := r.DB.Preload("Identifiers").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) List(page, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	if err := r.DB.Model(&model.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Preload("Identifiers").
		Order("last_name, first_name").
		Offset((page - 1) * limit).Limit(limit).
		Find(&students).Error
	return students, total, err
}

// ByIdentifier returns every student carrying the given external identifier.
// More than one row means dirty roster data; callers must treat that as a
// conflict rather than picking one.
func (r *StudentRepository) ByIdentifier(kind model.IdentifierKind, value string) ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Preload("Identifiers").
		Joins("JOIN student_identifiers si ON si.student_id = students.id").
		Where("si.kind = ? AND si.value = ? AND si.deleted_at IS NULL", kind, value).
		Find(&students).Error
	return students, err
}

func (r *StudentRepository) AddIdentifier(ident *model.StudentIdentifier) error {
	return r.DB.Create(ident).Error
}

// SetPhonemicLevel upserts the student's level for a subject.
func (r *StudentRepository) SetPhonemicLevel(rec *model.StudentPhonemicLevel) error {
	var existing model.StudentPhonemicLevel
	err := r.DB.Where("student_id = ? AND subject_id = ?", rec.StudentID, rec.SubjectID).
		First(&existing).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if existing.ID == 0 {
		return r.DB.Create(rec).Error
	}
	existing.PhonemicLevelID = rec.PhonemicLevelID
	existing.AssessedBy = rec.AssessedBy
	return r.DB.Save(&existing).Error
}

// LevelForSubject returns 0 when no level is recorded.
func (r *StudentRepository) LevelForSubject(studentID, subjectID uint) (uint, error) {
	var rec model.StudentPhonemicLevel
	err := r.DB.Where("student_id = ? AND subject_id = ?", studentID, subjectID).
		First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rec.PhonemicLevelID, nil
}

func (r *StudentRepository) LevelsForStudent(studentID uint) ([]model.StudentPhonemicLevel, error) {
	var recs []model.StudentPhonemicLevel
	err := r.DB.Where("student_id = ?", studentID).Find(&recs).Error
	return recs, err
}

package repository

import (
	"remedial_edu_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// CreateWithQuestions writes the assessment, its questions and their choices
// in one transaction.
func (r *AssessmentRepository) CreateWithQuestions(a *model.Assessment) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(a).Error
	})
}

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Omit("Questions").Save(a).Error
}

func (r *AssessmentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("assessment_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Choice{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("assessment_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assessment{}, id).Error
	})
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("assessment_questions.`order`, assessment_questions.id")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("assessment_question_choices.`order`, assessment_question_choices.id")
		}).
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) FindByAccessCode(code string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("assessment_questions.`order`, assessment_questions.id")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("assessment_question_choices.`order`, assessment_question_choices.id")
		}).
		Where("access_code = ?", code).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) List(page, limit int, createdBy uint) ([]model.Assessment, int64, error) {
	var items []model.Assessment
	var total int64

	q := r.DB.Model(&model.Assessment{})
	if createdBy != 0 {
		q = q.Where("created_by = ?", createdBy)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *AssessmentRepository) QuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("assessment_question_choices.`order`, assessment_question_choices.id")
	}).First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *AssessmentRepository) CountQuestions(assessmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("assessment_id = ?", assessmentID).
		Count(&count).Error
	return count, err
}

func (r *AssessmentRepository) ListQuestions(assessmentID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Preload("Choices").
		Where("assessment_id = ?", assessmentID).
		Order("`order`, id").
		Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *AssessmentRepository) UpdateQuestion(q *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", q.ID).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		return tx.Save(q).Error
	})
}

func (r *AssessmentRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

// SubmittedAttemptCount counts attempts that left in_progress; authoring is
// locked once this is non-zero.
func (r *AssessmentRepository) SubmittedAttemptCount(assessmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).
		Where("assessment_id = ? AND status IN ?", assessmentID,
			[]model.AttemptStatus{model.AttemptSubmitted, model.AttemptGraded}).
		Count(&count).Error
	return count, err
}

func (r *AssessmentRepository) ListAttempts(assessmentID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

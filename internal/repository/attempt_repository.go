package repository

import (
	"remedial_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(a *model.Attempt) error {
	return r.DB.Create(a).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var a model.Attempt
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// LatestForStudent returns the most recent attempt for the pair, nil when none.
func (r *AttemptRepository) LatestForStudent(assessmentID, studentID uint) (*model.Attempt, error) {
	var a model.Attempt
	err := r.DB.Where("assessment_id = ? AND student_id = ?", assessmentID, studentID).
		Order("started_at DESC, id DESC").
		First(&a).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) FindAnswer(attemptID, questionID uint) (*model.Answer, error) {
	var ans model.Answer
	err := r.DB.Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		First(&ans).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ans, nil
}

// UpsertAnswer overwrites the existing (attempt, question) row if present,
// inserting otherwise, inside one transaction.
func (r *AttemptRepository) UpsertAnswer(ans *model.Answer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.Answer
		err := tx.Where("attempt_id = ? AND question_id = ?", ans.AttemptID, ans.QuestionID).
			First(&existing).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if existing.ID == 0 {
			return tx.Create(ans).Error
		}
		existing.SelectedChoiceID = ans.SelectedChoiceID
		existing.AnswerText = ans.AnswerText
		existing.IsCorrect = ans.IsCorrect
		existing.Score = ans.Score
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*ans = existing
		return nil
	})
}

func (r *AttemptRepository) UpdateAnswer(ans *model.Answer) error {
	return r.DB.Save(ans).Error
}

func (r *AttemptRepository) AnswersByAttempt(attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("attempt_id = ?", attemptID).
		Order("question_id").
		Find(&answers).Error
	return answers, err
}

// FinalizeTally locks the attempt row, reads its answers and applies fn, all
// inside one transaction. The status flip and frozen score commit atomically
// with the aggregation they were computed from.
func (r *AttemptRepository) FinalizeTally(attemptID uint, fn func(a *model.Attempt, answers []model.Answer) (bool, error)) (*model.Attempt, error) {
	var a model.Attempt
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, attemptID).Error; err != nil {
			return err
		}
		var answers []model.Answer
		if err := tx.Where("attempt_id = ?", attemptID).
			Order("question_id").
			Find(&answers).Error; err != nil {
			return err
		}
		changed, err := fn(&a, answers)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		return tx.Model(&model.Attempt{}).Where("id = ?", a.ID).
			Updates(map[string]interface{}{
				"status":       a.Status,
				"submitted_at": a.SubmittedAt,
				"total_score":  a.TotalScore,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes the attempt and its answers; used by approved attempt resets.
func (r *AttemptRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attempt_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Attempt{}, id).Error
	})
}

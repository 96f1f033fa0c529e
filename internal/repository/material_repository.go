package repository

import (
	"remedial_edu_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(m *model.LearningMaterial) error {
	return r.DB.Create(m).Error
}

func (r *MaterialRepository) FindByID(id uint) (*model.LearningMaterial, error) {
	var m model.LearningMaterial
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) List(subjectID, levelID uint, page, limit int) ([]model.LearningMaterial, int64, error) {
	q := r.DB.Model(&model.LearningMaterial{})
	if subjectID != 0 {
		q = q.Where("subject_id = ?", subjectID)
	}
	if levelID != 0 {
		q = q.Where("phonemic_level_id = ?", levelID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.LearningMaterial
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *MaterialRepository) Delete(id uint) error {
	return r.DB.Delete(&model.LearningMaterial{}, id).Error
}

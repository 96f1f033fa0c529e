package repository

import (
	"remedial_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ApprovalRepository struct {
	DB *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{DB: db}
}

func (r *ApprovalRepository) Create(req *model.ApprovalRequest) error {
	return r.DB.Create(req).Error
}

func (r *ApprovalRepository) FindByID(id uint) (*model.ApprovalRequest, error) {
	var req model.ApprovalRequest
	if err := r.DB.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *ApprovalRepository) List(status model.ApprovalStatus, requestedBy uint) ([]model.ApprovalRequest, error) {
	q := r.DB.Model(&model.ApprovalRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if requestedBy != 0 {
		q = q.Where("requested_by = ?", requestedBy)
	}

	var reqs []model.ApprovalRequest
	err := q.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *ApprovalRepository) Update(req *model.ApprovalRequest) error {
	return r.DB.Save(req).Error
}

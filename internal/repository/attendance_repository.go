package repository

import (
	"time"

	"remedial_edu_backend/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

// Upsert overwrites any earlier record for the same (student, date).
func (r *AttendanceRepository) Upsert(rec *model.AttendanceRecord) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.AttendanceRecord
		err := tx.Where("student_id = ? AND date = ?", rec.StudentID, rec.Date).
			First(&existing).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if existing.ID == 0 {
			return tx.Create(rec).Error
		}
		existing.Status = rec.Status
		existing.Note = rec.Note
		existing.RecordedBy = rec.RecordedBy
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*rec = existing
		return nil
	})
}

func (r *AttendanceRepository) List(studentID uint, from, to time.Time) ([]model.AttendanceRecord, error) {
	q := r.DB.Model(&model.AttendanceRecord{})
	if studentID != 0 {
		q = q.Where("student_id = ?", studentID)
	}
	if !from.IsZero() {
		q = q.Where("date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("date <= ?", to)
	}

	var recs []model.AttendanceRecord
	err := q.Order("date DESC").Find(&recs).Error
	return recs, err
}

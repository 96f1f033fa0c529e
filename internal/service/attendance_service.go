package service

import (
	"errors"
	"time"

	"remedial_edu_backend/internal/model"
	"remedial_edu_backend/internal/repository"
	"remedial_edu_backend/internal/util"

	"gorm.io/gorm"
)

type AttendanceService struct {
	Repo     *repository.AttendanceRepository
	Students *repository.StudentRepository
}

func NewAttendanceService(repo *repository.AttendanceRepository, students *repository.StudentRepository) *AttendanceService {
	return &AttendanceService{Repo: repo, Students: students}
}

type AttendanceRequest struct {
	StudentID uint                   `json:"studentId" binding:"required"`
	Date      string                 `json:"date" binding:"required"` // YYYY-MM-DD
	Status    model.AttendanceStatus `json:"status" binding:"required"`
	Note      string                 `json:"note"`
}

var ErrBadAttendance = errors.New("invalid attendance status or date")

// Record upserts the student's attendance for the given day.
func (s *AttendanceService) Record(req AttendanceRequest, recordedBy uint) (*model.AttendanceRecord, error) {
	if !req.Status.Valid() {
		return nil, ErrBadAttendance
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrBadAttendance
	}

	if _, err := s.Students.FindByID(req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	rec := &model.AttendanceRecord{
		StudentID:  req.StudentID,
		Date:       day,
		Status:     req.Status,
		Note:       req.Note,
		RecordedBy: recordedBy,
	}
	if err := s.Repo.Upsert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// History lists attendance for a student, optionally bounded by date strings.
func (s *AttendanceService) History(studentID uint, fromStr, toStr string) ([]model.AttendanceRecord, error) {
	var from, to time.Time
	if fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, ErrBadAttendance
		}
		from = t
	}
	if toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, ErrBadAttendance
		}
		to = t
	}
	return s.Repo.List(studentID, from, to)
}

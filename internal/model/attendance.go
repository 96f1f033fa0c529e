package model

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// AttendanceRecord is one student's attendance for one remedial-session day.
// Re-recording the same (student, date) overwrites the earlier row.
type AttendanceRecord struct {
	BaseModel
	StudentID  uint             `gorm:"uniqueIndex:idx_attendance_day;type:bigint unsigned;not null" json:"studentId"`
	Date       time.Time        `gorm:"uniqueIndex:idx_attendance_day;type:date;not null" json:"date"`
	Status     AttendanceStatus `gorm:"size:20;not null" json:"status"`
	Note       string           `gorm:"size:255" json:"note"`
	RecordedBy uint             `gorm:"type:bigint unsigned" json:"recordedBy"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

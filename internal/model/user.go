package model

import "time"

type UserRole string

const (
	Teacher       UserRole = "teacher"
	MasterTeacher UserRole = "master_teacher"
	Principal     UserRole = "principal"
	Admin         UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('teacher','master_teacher','principal','admin');default:'teacher'" json:"role"`
	School    string    `gorm:"size:150" json:"school"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

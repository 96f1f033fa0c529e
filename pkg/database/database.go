package database

import (
	"fmt"
	"log"

	"remedial_edu_backend/internal/config"
	"remedial_edu_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.PhonemicLevel{},
		&model.Student{},
		&model.StudentIdentifier{},
		&model.StudentPhonemicLevel{},
		&model.Assessment{},
		&model.Question{},
		&model.Choice{},
		&model.Attempt{},
		&model.Answer{},
		&model.AttendanceRecord{},
		&model.LearningMaterial{},
		&model.ApprovalRequest{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")
	seedLookups(db)
	return nil
}

// seedLookups inserts the subject and phonemic-level rows the app gates on.
func seedLookups(db *gorm.DB) {
	var subjCount int64
	db.Model(&model.Subject{}).Count(&subjCount)
	if subjCount == 0 {
		defaultSubjects := []model.Subject{
			{Code: "english", Name: "English"},
			{Code: "filipino", Name: "Filipino"},
			{Code: "math", Name: "Mathematics"},
		}
		for _, s := range defaultSubjects {
			db.Create(&s)
		}
	}

	var levelCount int64
	db.Model(&model.PhonemicLevel{}).Count(&levelCount)
	if levelCount == 0 {
		defaultLevels := []model.PhonemicLevel{
			{Code: "full_refresher", Name: "Full Refresher", Rank: 1},
			{Code: "syllable", Name: "Syllable", Rank: 2},
			{Code: "word", Name: "Word", Rank: 3},
			{Code: "paragraph", Name: "Paragraph", Rank: 4},
			{Code: "story", Name: "Story", Rank: 5},
		}
		for _, l := range defaultLevels {
			db.Create(&l)
		}
	}
}

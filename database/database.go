package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Ujwol1086/school-attendance-system/config"
	"github.com/Ujwol1086/school-attendance-system/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Teacher{},
		&models.Student{},
		&models.Course{},
		&models.Attendance{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

package database

import (
	"fmt"
	"log"
	"quiz_sphere_backend/internal/config"
	"quiz_sphere_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Release mode skips schema changes unless forced from the command line.
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.RefreshToken{},
			&model.Category{},
			&model.CategoryScale{},
			&model.Question{},
			&model.Choice{},
			&model.Attempt{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	// Bootstrap admin account on an empty users table.
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin := &model.User{
			Name:     "admin",
			Email:    "admin@quizsphere.local",
			Password: string(hashed),
			Role:     model.RoleAdmin,
		}
		if err := db.Create(admin).Error; err != nil {
			return nil, err
		}
		log.Println("Seeded default admin account (admin@quizsphere.local)")
	}

	return db, nil
}

package database

import (
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tawhidislam22/business-management/internal/models"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Asset{},
		&models.AssetRequest{},
		&models.Payment{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedDefaultHR()
}

// seedDefaultHR creates an initial HR manager account so a fresh install
// has someone who can add assets and employees.
func seedDefaultHR() {
	email := os.Getenv("HR_EMAIL")
	if email == "" {
		email = "hr@xyz.local"
	}
	password := os.Getenv("HR_PASSWORD")
	if password == "" {
		password = "Hr12345!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleHR).
		Count(&count).Error; err != nil {
		log.Printf("failed to check HR user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash default HR password: %v", err)
		return
	}

	pkg, _ := models.PackageByName("basic")
	hr := models.User{
		Email:        email,
		Name:         "Default HR",
		PasswordHash: string(hash),
		Role:         models.RoleHR,
		CompanyName:  "XYZ Company",
		PackageName:  pkg.Name,
		MemberLimit:  pkg.MemberLimit,
	}

	if err := DB.Create(&hr).Error; err != nil {
		log.Printf("failed to create default HR user: %v", err)
		return
	}

	log.Printf("created default HR user: %s (password: %s)", email, password)
}

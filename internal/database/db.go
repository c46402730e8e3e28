package database

import (
	"log"

	"restaurant-management-backend/internal/config"
	"restaurant-management-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Migration hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate - şemayı oluşturur ve sabit rolleri seed eder. Testler de aynı yolu
// kullanır, o yüzden Init'ten ayrı tutuluyor.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Role{},
		&models.Store{},
		&models.User{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	return seedRoles(db)
}

// Roller referans veridir, admin akışından oluşturulmaz
func seedRoles(db *gorm.DB) error {
	for _, name := range []models.RoleName{models.RoleAdmin, models.RoleStaff} {
		var count int64
		if err := db.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&models.Role{Name: name}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

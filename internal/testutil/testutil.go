package testutil

import (
	"strings"
	"testing"
	"time"

	"restaurant-management-backend/internal/auth"
	"restaurant-management-backend/internal/config"
	"restaurant-management-backend/internal/database"
	"restaurant-management-backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDB - in-memory sqlite açar, şemayı kurar, rolleri seed eder ve global
// database.DB'yi test DB'sine çevirir.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// :memory: bağlantı başına ayrı DB olur, tek bağlantıya sabitle
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	database.DB = db
	return db
}

func NewConfig() *config.Config {
	return &config.Config{
		HTTPPort:    "8080",
		JWTSecret:   strings.Repeat("x", 32),
		JWTTTL:      24 * time.Hour,
		CORSOrigins: "http://localhost:5173",
	}
}

// CreateUser - bcrypt hash'li kullanıcı oluşturur, rolü isimden çözer
func CreateUser(t *testing.T, db *gorm.DB, username, email, password string, role models.RoleName, storeID *uint) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	var r models.Role
	require.NoError(t, db.Where("name = ?", role).First(&r).Error)

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []models.Role{r},
		StoreID:      storeID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateStore(t *testing.T, db *gorm.DB, name string, lat, lng float64) *models.Store {
	t.Helper()

	store := &models.Store{Name: name, Latitude: lat, Longitude: lng}
	require.NoError(t, db.Create(store).Error)
	return store
}

// AdminToken - ADMIN rollü bir token üretir (middleware stateless doğruladığı
// için kullanıcının DB'de olması şart değil)
func AdminToken(t *testing.T, cfg *config.Config) string {
	t.Helper()

	user := &models.User{
		ID:       999,
		Username: "testadmin",
		Roles:    []models.Role{{Name: models.RoleAdmin}},
	}
	token, err := auth.GenerateToken(cfg.JWTSecret, cfg.JWTTTL, user)
	require.NoError(t, err)
	return token
}

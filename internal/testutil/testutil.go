package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"purchasing-backend/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSchemaPrefix = "test_requests"

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// SetupTestDB connects to the test Postgres instance and isolates the test in
// a freshly created schema that is dropped on cleanup. Tests are skipped when
// no database is reachable so the pure unit tests still run everywhere.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	host := getEnv("TEST_DB_HOST", getEnv("DB_HOST", "127.0.0.1"))
	port := getEnv("TEST_DB_PORT", getEnv("DB_PORT", "5432"))
	user := getEnv("TEST_DB_USER", getEnv("DB_USER", "postgres"))
	password := getEnv("TEST_DB_PASSWORD", getEnv("DB_PASSWORD", "postgres"))
	dbname := getEnv("TEST_DB_NAME", getEnv("DB_NAME", "postgres"))

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", testSchemaPrefix, time.Now().UnixNano()%1000000)

	admin, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("skipping: test database unavailable: %v", err)
	}

	if err := admin.Exec("CREATE SCHEMA " + schemaName).Error; err != nil {
		t.Skipf("skipping: cannot create test schema: %v", err)
	}

	dsn := baseDSN + " search_path=" + schemaName
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test schema: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Permission{},
		&model.PurchaseRequest{},
		&model.PurchaseRequestHistory{},
		&model.RequestSetting{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = admin.Exec("DROP SCHEMA " + schemaName + " CASCADE").Error
		if sqlDB, err := admin.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// SetupRouter returns a quiet gin engine for handler tests.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// SeedSettings writes request settings rows for a test.
func SeedSettings(t *testing.T, db *gorm.DB, settings model.RequestSettings) {
	t.Helper()
	for key, value := range settings.ToKV() {
		row := model.RequestSetting{Key: key, Value: value}
		if err := db.Save(&row).Error; err != nil {
			t.Fatalf("failed to seed setting %s: %v", key, err)
		}
	}
}

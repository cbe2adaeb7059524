package models

import (
	"fmt"

	"github.com/caseflow/caseflow/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&Project{},
		&Status{},
		&TestCase{},
		&TestRun{},
		&TestRunCase{},
		&TestRunResult{},
		&TestRunStepResult{},
		&AutomatedRun{},
		&AutomatedResult{},
		&Issue{},
		&IssueTestCase{},
		&Milestone{},
		&Session{},
		&SessionResult{},
		&SystemConfig{},
		&SystemLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates built-in statuses and system configs if not present
func SeedDefaultData() error {
	defaultStatuses := []Status{
		{Name: "Passed", Color: "#22c55e", IsSuccess: true, IsCompleted: true, Position: 1, IsSystem: true},
		{Name: "Failed", Color: "#ef4444", IsFailure: true, IsCompleted: true, Position: 2, IsSystem: true},
		{Name: "Blocked", Color: "#f59e0b", IsCompleted: true, Position: 3, IsSystem: true},
		{Name: "Skipped", Color: "#94a3b8", IsCompleted: true, Position: 4, IsSystem: true},
		{Name: "Untested", Color: "#cbd5e1", Position: 5, IsSystem: true},
		{Name: "In Progress", Color: "#3b82f6", Position: 6, IsSystem: true},
	}

	for _, status := range defaultStatuses {
		var count int64
		DB.Model(&Status{}).Where("name = ?", status.Name).Count(&count)
		if count == 0 {
			if err := DB.Create(&status).Error; err != nil {
				return err
			}
		}
	}

	defaultConfigs := []SystemConfig{
		{Key: "digest_enabled", Value: "false", Type: "bool", Group: "digest", Label: "Enable Stale Test Digest"},
		{Key: "digest_schedule", Value: "0 8 * * *", Type: "string", Group: "digest", Label: "Digest Cron Schedule"},
		{Key: "digest_country", Value: "US", Type: "string", Group: "digest", Label: "Business Calendar Country"},
		{Key: "log_retention_days", Value: "30", Type: "int", Group: "system", Label: "System Log Retention Days"},
	}

	for _, cfg := range defaultConfigs {
		var count int64
		DB.Model(&SystemConfig{}).Where("key = ?", cfg.Key).Count(&count)
		if count == 0 {
			if err := DB.Create(&cfg).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

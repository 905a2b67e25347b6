package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nearhood/nearhood-backend/internal/config"
)

// Connect opens a PostgreSQL connection from config. When
// InstanceConnectionName is set the DSN targets a Cloud SQL unix socket,
// otherwise a plain TCP host.
func Connect(cfg config.DBConfig, logger *zap.Logger) (*gorm.DB, error) {
	var dsn string
	if cfg.InstanceConnectionName != "" {
		dsn = fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.InstanceConnectionName, cfg.User, cfg.Password, cfg.Name)
		logger.Info("connecting to Cloud SQL via socket",
			zap.String("instance", cfg.InstanceConnectionName))
	} else {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
		logger.Info("connecting to PostgreSQL", zap.String("host", cfg.Host))
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Needed so duplicate-key violations surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("database connected")
	return db, nil
}

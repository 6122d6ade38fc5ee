// Package database opens the PostgreSQL connection used by the users service
// and builds the statements it runs.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/config"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/bootstrap"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectToDatabase opens the connection, retrying per cfg before giving up
// with a ConnectionAborted error.
func ConnectToDatabase(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*gorm.DB, error) {
	log.Infof("Establishing connection to database %s on %s:%d...", cfg.Name, cfg.Host, cfg.Port)

	b := bootstrap.New("database", func(ctx context.Context) (*gorm.DB, error) {
		return Open(ctx, cfg, log)
	}, log)
	b.MaxRetries = cfg.MaxRetries
	b.RetryDelay = cfg.RetryDelay

	return b.Run(ctx)
}

// Open makes a single connection attempt and verifies it with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*gorm.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse connection config: %w", err)
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: NewGormLogger(log),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewGormLogger routes gorm's SQL traces through the service logger.
func NewGormLogger(log *logger.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	switch log.Zerolog().GetLevel() {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		level = gormlogger.Info
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		level = gormlogger.Error
	case zerolog.Disabled:
		level = gormlogger.Silent
	}

	return gormlogger.New(log, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

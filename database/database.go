package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"healthrecord/internal/config"
	"healthrecord/internal/logger"
)

// ConnectDatabase opens the postgres pool described by cfg and verifies it with a ping.
func ConnectDatabase(cfg config.DBConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 logger.Gorm(log),
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(15 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("connected to database",
		zap.Int("max_open_conns", 50),
		zap.Int("max_idle_conns", 10),
	)
	return db, nil
}

// Ping reports whether the pool can still reach the server.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// MonitorDBConnections logs a warning whenever the pool runs hot. It stops when ctx is done.
func MonitorDBConnections(ctx context.Context, db *gorm.DB, log *zap.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				stats := sqlDB.Stats()
				if stats.InUse > 40 {
					log.Warn("database connection pool is busy",
						zap.Int("in_use", stats.InUse),
						zap.Int("idle", stats.Idle),
						zap.Int("open", stats.OpenConnections),
					)
				}
			}
		}
	}()
}

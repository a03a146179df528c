package config

import (
	"context"
	"fmt"
	"time"

	"github.com/barrelborn/digital-menu/database"
	"github.com/barrelborn/digital-menu/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitStore connects the configured backend and verifies it answers. The
// caller must treat an error as fatal.
func InitStore(ctx context.Context, cfg *Config) (database.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	switch cfg.DBDriver {
	case "mongo", "mongodb":
		store, err := database.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.Location)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			utils.ErrorLogger.Warnf("Unique indexes not created: %v", err)
		}
		return store, nil
	case "mysql":
		return openSQL(ctx, mysql.Open(cfg.DBSource), cfg.Location)
	case "sqlite":
		return openSQL(ctx, sqlite.Open(cfg.DBSource), cfg.Location)
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

func openSQL(ctx context.Context, dialector gorm.Dialector, loc *time.Location) (*database.SQLStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: GormLogger()})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialector.Name(), err)
	}
	store, err := database.NewSQLStore(db, loc)
	if err != nil {
		return nil, err
	}
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping %s: %w", dialector.Name(), err)
	}
	return store, nil
}

// GormLogger routes gorm's warnings and slow queries through logrus.
func GormLogger() logger.Interface {
	return logger.New(utils.ErrorLogger, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

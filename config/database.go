package config

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectionString returns the configured DSN, building a PostgreSQL one
// from the individual fields when DB_DSN is not set.
func (d DatabaseConfig) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Driver == "sqlite" {
		return "airmetr.db"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// ConnectDB opens the database. PostgreSQL goes through pgx by default, or
// lib/pq when SQLDriver is "postgres".
func ConnectDB(cfg DatabaseConfig, env string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if env == "prod" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres", "":
		sqlDriver := cfg.SQLDriver
		if sqlDriver == "" {
			sqlDriver = "pgx"
		}
		dialector = postgres.New(postgres.Config{
			DriverName: sqlDriver,
			DSN:        cfg.ConnectionString(),
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}

	if cfg.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// one writer at a time serialises booking transactions
		sqlDB.SetMaxOpenConns(1)
	}

	log.Printf("Successfully connected to %s db", dialector.Name())
	return db, nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/kyue26/emertgency-sub001/internal/infrastructure/config"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionPool wraps the gorm handle of the relational backend together
// with its pool settings.
type ConnectionPool struct {
	DB              *gorm.DB
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Dialector picks the gorm driver for cfg.Driver ("postgres" or "mysql").
func Dialector(cfg *config.DatabaseConfig) gorm.Dialector {
	if cfg.Driver == "mysql" {
		return mysql.Open(cfg.GetDSN())
	}
	return postgres.Open(cfg.GetDSN())
}

// GormConfig is shared by production and test connections. Every store
// operation is a single statement, so gorm's implicit transactions are off.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		SkipDefaultTransaction: true,
	}
}

// NewConnectionPool opens the database and applies pool settings.
func NewConnectionPool(cfg *config.DatabaseConfig, log *zap.Logger) (*ConnectionPool, error) {
	db, err := gorm.Open(Dialector(cfg), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	pool := &ConnectionPool{
		DB:              db,
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: 30 * time.Minute,
	}
	if err := pool.ConfigurePool(); err != nil {
		_ = pool.Close()
		return nil, err
	}

	log.Info("database connection pool configured",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host),
		zap.Int("max_idle_conns", pool.MaxIdleConns),
		zap.Int("max_open_conns", pool.MaxOpenConns),
	)
	return pool, nil
}

// NewConnectionPoolFromDB wraps an already opened gorm handle without
// touching its pool settings.
func NewConnectionPoolFromDB(db *gorm.DB) *ConnectionPool {
	return &ConnectionPool{DB: db}
}

// ConfigurePool applies the pool parameters and verifies the connection.
func (p *ConnectionPool) ConfigurePool() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(p.MaxIdleConns)
	sqlDB.SetMaxOpenConns(p.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(p.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(p.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// HealthCheck pings the database with a short timeout.
func (p *ConnectionPool) HealthCheck(ctx context.Context) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connections.
func (p *ConnectionPool) Close() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the gorm handle
func (p *ConnectionPool) GetDB() *gorm.DB {
	return p.DB
}

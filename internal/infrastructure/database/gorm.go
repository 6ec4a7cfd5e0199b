package database

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/infrastructure/config"
	appLogger "wardrobe-api/internal/infrastructure/logger"
)

// NewGormDB opens the PostgreSQL connection and configures the pool.
func NewGormDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)

	gormConfig := &gorm.Config{
		Logger: gormlogger.New(
			log.New(log.Writer(), "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// AutoMigrate migrates the wardrobe schema.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&entities.User{},
		&entities.Item{},
		&entities.ItemHistory{},
		&entities.AuditLog{},
		&entities.Outfit{},
		&entities.OutfitItem{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// InitializeDatabase runs migration and the additional indexes.
func InitializeDatabase(db *gorm.DB, log appLogger.Logger) error {
	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	if err := createIndexes(db); err != nil {
		// Index creation failing should not block startup.
		log.WithField("error", err.Error()).Warn("Failed to create indexes, continuing with startup")
	}

	return nil
}

// createIndexes adds composite indexes the tag-level declarations miss.
func createIndexes(db *gorm.DB) error {
	stmts := []string{
		"CREATE INDEX IF NOT EXISTS idx_items_user_status ON items(user_id, laundry_status)",
		"CREATE INDEX IF NOT EXISTS idx_items_user_type ON items(user_id, type)",
		"CREATE INDEX IF NOT EXISTS idx_item_history_item_created ON item_history(item_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_created ON audit_logs(user_id, created_at DESC)",
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// HealthCheck pings the database.
func HealthCheck(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// ConnectionKeepAliveService periodically pings the database so idle
// connections are not dropped by middleboxes.
type ConnectionKeepAliveService struct {
	db       *gorm.DB
	logger   appLogger.Logger
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewConnectionKeepAliveService creates the keep-alive service.
func NewConnectionKeepAliveService(db *gorm.DB, logger appLogger.Logger, interval time.Duration) *ConnectionKeepAliveService {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &ConnectionKeepAliveService{
		db:       db,
		logger:   logger,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the keep-alive loop.
func (s *ConnectionKeepAliveService) Start() {
	s.wg.Add(1)
	go s.keepAliveLoop()
	s.logger.WithField("interval", s.interval).Info("Database connection keep-alive service started")
}

// Stop terminates the loop and waits for it.
func (s *ConnectionKeepAliveService) Stop() {
	s.cancel()
	s.wg.Wait()
	s.logger.Info("Database connection keep-alive service stopped")
}

func (s *ConnectionKeepAliveService) keepAliveLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			var result int
			if err := s.db.Raw("SELECT 1").Scan(&result).Error; err != nil {
				s.logger.WithField("error", err.Error()).Error("Database keep-alive query failed")
			}
		}
	}
}

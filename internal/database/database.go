package database

import (
	"context"
	"log/slog"
	"time"

	"luminaops/config"
	. "luminaops/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// MEMORY_DSN keeps every table in process memory. The data lives exactly as
// long as the single pooled connection, so the pool is pinned to one.
const MEMORY_DSN = ":memory:"

// DB is the process-lifetime state of the application. It is created once by
// the application root and handed to repositories.
type DB struct {
	SQL   *gorm.DB
	Cache Cache
	// Locks serializes read-modify-write sequences per entity id.
	Locks *KeyedMutex
	log   logger.Logger
}

func New(config config.Config) (DB, error) {
	log := logger.New("database").Function("New")

	log.Info("Initializing database")
	db := &DB{
		Locks: NewKeyedMutex(),
		log:   log,
	}

	if err := db.initializeDB(); err != nil {
		return DB{}, log.Err("failed to initialize database", err)
	}

	if config.EventsCacheAddress == "" {
		log.Info("No events cache configured, events stay in process")
		return *db, nil
	}

	if err := db.initializeCacheDB(config); err != nil {
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

// NewInMemory builds a DB without any cache connection, used by tests and
// single-node runs.
func NewInMemory() (DB, error) {
	db := &DB{
		Locks: NewKeyedMutex(),
		log:   logger.New("database"),
	}

	if err := db.initializeDB(); err != nil {
		return DB{}, err
	}

	return *db, nil
}

func (s *DB) initializeDB() error {
	log := s.log.Function("initializeDB")

	gormLogger := gormLogger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	gormConfig := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	}

	db, err := gorm.Open(sqlite.Open(MEMORY_DSN), gormConfig)
	if err != nil {
		return log.Err("failed to open in-memory database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	// every new connection would open an empty database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := sqlDB.Ping(); err != nil {
		return log.Err("failed to ping in-memory database", err)
	}

	s.SQL = db

	if err := s.migrate(); err != nil {
		return log.Err("failed to migrate database", err)
	}

	log.Info("In-memory database ready")
	return nil
}

func (s *DB) migrate() error {
	log := s.log.Function("migrate")

	err := s.SQL.AutoMigrate(
		&User{},
		&Property{},
		&Booking{},
		&Job{},
		&InventoryItem{},
		&Issue{},
		&ChecklistTemplate{},
	)
	if err != nil {
		return log.Err("failed to auto migrate models", err)
	}

	templates := []ChecklistTemplate{
		NewChecklistTemplate(JobTurnover, DefaultTurnoverChecklist),
		NewChecklistTemplate(JobMaintenance, DefaultMaintenanceChecklist),
	}
	for _, template := range templates {
		if err := s.SQL.FirstOrCreate(&template, ChecklistTemplate{JobType: template.JobType}).Error; err != nil {
			return log.Err("failed to seed checklist template", err, "jobType", template.JobType)
		}
	}

	return nil
}

func (s *DB) SQLWithContext(ctx context.Context) *gorm.DB {
	return s.SQL.WithContext(ctx)
}

func (s *DB) Close() (err error) {
	if s.SQL != nil {
		sqlDB, dbErr := s.SQL.DB()
		if dbErr == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				err = s.log.Err("failed to close database", closeErr)
			}
		}
	}

	if s.Cache.Events != nil {
		s.Cache.Events.Close()
	}

	return err
}

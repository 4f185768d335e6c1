package migration

import (
	"context"
	"errors"
	"time"

	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.2.0"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db               *gorm.DB
	logger           coreport.Logger
	timeProvider     coreport.TimeProvider
	advancedIndexMgr *AdvancedIndexManager
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:               db,
		logger:           logger,
		timeProvider:     timeProvider,
		advancedIndexMgr: NewAdvancedIndexManager(db, logger),
	}
}

// MigrateAll performs all migrations
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	// Create migration version table first
	if err := m.db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Check current version
	currentVersion, err := m.GetCurrentVersion(context.Background())
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	m.logger.Info("Current database version", map[string]any{
		"version": currentVersion,
	})

	// Auto-migrate models
	if err := m.autoMigrateModels(); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Run custom migrations based on version
	if err := m.runVersionedMigrations(currentVersion); err != nil {
		m.logger.Error("Failed to run versioned migrations", map[string]any{
			"error":           err.Error(),
			"current_version": currentVersion,
			"target_version":  CurrentSchemaVersion,
		})
		return err
	}

	// Create basic indexes
	if err := m.createIndexes(); err != nil {
		m.logger.Error("Failed to create indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Create advanced PostgreSQL indexes for better performance
	if err := m.createAdvancedIndexes(); err != nil {
		m.logger.Error("Failed to create advanced indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Apply performance tweaks
	if err := m.applyPerformanceTweaks(); err != nil {
		m.logger.Error("Failed to apply performance tweaks", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Update migration version
	if err := m.setVersion(context.Background(), CurrentSchemaVersion, "Full schema migration"); err != nil {
		m.logger.Error("Failed to update schema version", map[string]any{
			"error":   err.Error(),
			"version": CurrentSchemaVersion,
		})
		return err
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion gets the current migration version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc").First(&version)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil // No version found
		}
		return "", result.Error
	}

	return version.Version, nil
}

// setVersion records a new migration version
func (m *MigrationManager) setVersion(ctx context.Context, version string, details string) error {
	var appliedAt time.Time
	if m.timeProvider != nil {
		appliedAt = m.timeProvider.Now()
	} else {
		appliedAt = time.Now()
	}

	migrationVersion := model.MigrationVersion{
		Version:   version,
		AppliedAt: appliedAt,
		Details:   details,
	}

	result := m.db.WithContext(ctx).Create(&migrationVersion)
	return result.Error
}

// autoMigrateModels auto-migrates database models
func (m *MigrationManager) autoMigrateModels() error {
	m.logger.Info("Auto-migrating database models", nil)

	return m.db.AutoMigrate(
		&model.Portfolio{},
		&model.Reservation{},
		&model.CompletionMark{},
		&model.Observation{},
		&model.AuditLog{},
	)
}

// runVersionedMigrations runs migrations specific to version transitions
func (m *MigrationManager) runVersionedMigrations(currentVersion string) error {
	m.logger.Info("Running versioned migrations", map[string]any{
		"from": currentVersion,
		"to":   CurrentSchemaVersion,
	})

	// If starting from scratch
	if currentVersion == "" {
		return m.runBaseMigrations()
	}

	// Apply migrations based on current version
	switch currentVersion {
	case "1.0.0":
		if err := m.migrateFrom1_0_0To1_1_0(); err != nil {
			return err
		}
		if err := m.migrateFrom1_1_0To1_2_0(); err != nil {
			return err
		}
	case "1.1.0":
		if err := m.migrateFrom1_1_0To1_2_0(); err != nil {
			return err
		}
	}

	return nil
}

// runBaseMigrations runs the base migrations for a new database
func (m *MigrationManager) runBaseMigrations() error {
	m.logger.Info("Running base migrations", nil)

	return nil
}

// migrateFrom1_0_0To1_1_0 migrates from version 1.0.0 to 1.1.0
func (m *MigrationManager) migrateFrom1_0_0To1_1_0() error {
	m.logger.Info("Migrating from v1.0.0 to v1.1.0", nil)

	// v1.1.0 introduced the observations and audit_logs tables, handled by
	// AutoMigrate above. Nothing column-level to rewrite.

	return nil
}

// migrateFrom1_1_0To1_2_0 migrates from version 1.1.0 to 1.2.0
func (m *MigrationManager) migrateFrom1_1_0To1_2_0() error {
	m.logger.Info("Migrating from v1.1.0 to v1.2.0", nil)

	// v1.2.0 added session_id to completion_marks, created by AutoMigrate.
	// Pre-existing marks keep the empty-string default.

	return nil
}

// createIndexes creates basic database indexes
func (m *MigrationManager) createIndexes() error {
	m.logger.Info("Creating database indexes", nil)

	// Composite index over the slot key for conflict lookups
	if err := m.db.Exec("CREATE INDEX IF NOT EXISTS idx_reservations_slot ON reservations (portfolio_id, hour)").Error; err != nil {
		return err
	}

	// Expiry index for the sweeper
	if err := m.db.Exec("CREATE INDEX IF NOT EXISTS idx_reservations_expires_at ON reservations (expires_at)").Error; err != nil {
		return err
	}

	// Session index for single-slot conflict checks
	if err := m.db.Exec("CREATE INDEX IF NOT EXISTS idx_reservations_session ON reservations (client_session_id)").Error; err != nil {
		return err
	}

	return nil
}

// createAdvancedIndexes creates advanced PostgreSQL indexes
func (m *MigrationManager) createAdvancedIndexes() error {
	return m.advancedIndexMgr.CreateAdvancedIndexes()
}

// applyPerformanceTweaks applies PostgreSQL performance tweaks
func (m *MigrationManager) applyPerformanceTweaks() error {
	return m.advancedIndexMgr.CreatePerformanceTweaks()
}

package repository

import (
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	"gorm.io/gorm"
)

// EntityType represents the type of entity for errors mapping
type EntityType string

const (
	// EntityTypePortfolio represents the portfolio entity
	EntityTypePortfolio EntityType = "portfolio"
	// EntityTypeReservation represents the slot reservation entity
	EntityTypeReservation EntityType = "reservation"
	// EntityTypeCompletionMark represents the completion mark entity
	EntityTypeCompletionMark EntityType = "completion_mark"
	// EntityTypeObservation represents the observation entity
	EntityTypeObservation EntityType = "observation"
	// EntityTypeAuditLog represents the audit log entity
	EntityTypeAuditLog EntityType = "audit_log"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Check for common GORM errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr.ErrNotFound
	}

	// Check for PostgreSQL specific errors
	errMsg := strings.ToLower(err.Error())

	switch {
	// Transaction and locking errors
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "serialization") ||
		strings.Contains(errMsg, "lock timeout"):
		return domainErr.ErrStoreUnavailable

	// Duplicate key errors
	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint"):
		return domainErr.ErrInvalidRequest

	// Constraint violations
	case strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "foreign key constraint"):
		return domainErr.ErrInvalidRequest

	// Connection issues
	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset"):
		return domainErr.ErrStoreUnavailable

	// Timeout errors
	case strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		return fmt.Errorf("%w: %s operation timed out", domainErr.ErrStoreUnavailable, operation)

	// Default error
	default:
		return domainErr.ErrInternalServer
	}
}

// MapEntityNotFoundError maps database errors to specific entity not found errors
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		switch entityType {
		case EntityTypePortfolio:
			return domainErr.ErrPortfolioNotFound
		case EntityTypeReservation:
			return domainErr.ErrReservationNotFound
		default:
			return domainErr.ErrNotFound
		}
	}

	return m.MapError(err, string(entityType))
}

// MapPortfolioNotFoundError maps database errors to portfolio not found errors
func (m *ErrorMapper) MapPortfolioNotFoundError(err error) error {
	return m.MapEntityNotFoundError(err, EntityTypePortfolio)
}

// MapReservationNotFoundError maps database errors to reservation not found errors
func (m *ErrorMapper) MapReservationNotFoundError(err error) error {
	return m.MapEntityNotFoundError(err, EntityTypeReservation)
}

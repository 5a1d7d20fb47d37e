package service

import (
	"context"
	"database/sql"
	"strconv"

	"go.uber.org/zap"

	"github.com/ecotracker/ecotracker-backend/internal/database"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db  *sql.DB
	log *zap.Logger
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, log *zap.Logger) *SystemService {
	return &SystemService{
		db:  db,
		log: log,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}

// CheckVersion reports the application version and the applied schema version.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	v, err := database.SchemaVersion(ctx, s.db, s.log)
	if err != nil {
		return model.VersionInfo{}, err
	}
	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(v, 10),
	}, nil
}

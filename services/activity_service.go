package services

import (
	"encoding/json"
	"log/slog"

	"property-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityService writes the activity feed. Recording is strictly best-effort:
// a failed insert is logged to the operational log and swallowed, so the
// primary operation never fails because of it.
type ActivityService struct {
	DB  *gorm.DB
	Log *slog.Logger
}

func NewActivityService(db *gorm.DB, log *slog.Logger) *ActivityService {
	return &ActivityService{DB: db, Log: log}
}

func (s *ActivityService) Record(eventType, description, entityID string, metadata map[string]interface{}) {
	if s == nil || s.DB == nil {
		return
	}

	entry := models.ActivityLog{
		Type:        eventType,
		Description: description,
		EntityID:    entityID,
	}
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}

	if err := s.DB.Create(&entry).Error; err != nil {
		if s.Log != nil {
			s.Log.Warn("activity log write failed", "type", eventType, "err", err)
		}
	}
}

func (s *ActivityService) Recent(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []models.ActivityLog
	err := s.DB.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

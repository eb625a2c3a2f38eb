package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is a best-effort audit feed. Writes are fire-and-forget: a failed
// insert must never abort the operation being logged.
type ActivityLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time

	Type        string         `gorm:"size:60;index" json:"type"`
	Description string         `gorm:"size:300" json:"description"`
	EntityID    string         `gorm:"column:entity_id;size:64" json:"entity_id,omitempty"`
	Actor       string         `gorm:"size:120" json:"actor,omitempty"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
}

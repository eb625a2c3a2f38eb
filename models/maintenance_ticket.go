package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
)

const (
	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
)

// MaintenanceTicket can be raised by staff from the dashboard or by a guest from
// the portal (GuestID set in that case).
type MaintenanceTicket struct {
	gorm.Model

	UnitID      uint       `gorm:"index;column:unit_id" json:"unit_id"`
	GuestID     *uint      `gorm:"column:guest_id" json:"guest_id,omitempty"`
	Title       string     `gorm:"size:150" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Priority    string     `gorm:"size:20;default:medium" json:"priority"`
	Status      string     `gorm:"size:20;default:open" json:"status"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`

	Unit  Unit   `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Guest *Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
}

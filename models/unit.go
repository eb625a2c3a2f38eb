package models

import (
	"gorm.io/gorm"
)

// Unit statuses follow the housekeeping lifecycle: a checked-in booking marks the
// unit occupied, check-out marks it dirty, a completed cleaning task marks it
// clean, and an open maintenance ticket can take it out of service.
const (
	UnitStatusClean       = "clean"
	UnitStatusDirty       = "dirty"
	UnitStatusOccupied    = "occupied"
	UnitStatusMaintenance = "maintenance"
)

type Unit struct {
	gorm.Model

	Name     string `json:"name" gorm:"size:100;uniqueIndex"`
	Type     string `json:"type" gorm:"size:50;index"`
	Capacity int    `json:"capacity" gorm:"default:2"`

	// BasePrice is the fallback nightly rate when no pricing rule covers a night.
	BasePrice float64 `json:"base_price" gorm:"column:base_price"`
	Status    string  `json:"status" gorm:"size:20;default:clean"`

	Floor       string `json:"floor" gorm:"type:varchar(10)"`
	Description string `json:"description" gorm:"type:text"`
}

func ValidUnitStatus(status string) bool {
	switch status {
	case UnitStatusClean, UnitStatusDirty, UnitStatusOccupied, UnitStatusMaintenance:
		return true
	}
	return false
}

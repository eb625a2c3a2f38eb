package models

import (
	"time"

	"gorm.io/gorm"
)

// PricingRule is a nightly price override for an inclusive calendar-date range,
// scoped either to one unit (UnitID set) or to a whole unit type (UnitID nil,
// UnitType set). Rules are created and deleted, never edited; when several rules
// contest the same night the most recently created one wins.
type PricingRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UnitID   *uint  `gorm:"column:unit_id;index" json:"unit_id,omitempty"`
	UnitType string `gorm:"column:unit_type;size:50;index" json:"unit_type,omitempty"`

	StartDate time.Time `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;type:date" json:"end_date"`

	Price float64 `json:"price"`

	Unit *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// Covers reports whether night falls inside the rule's inclusive date range.
func (r *PricingRule) Covers(night time.Time) bool {
	return !night.Before(r.StartDate) && !night.After(r.EndDate)
}

// AppliesTo reports whether the rule's scope matches the unit: an exact unit
// match, or a type match for rules that carry no unit scope.
func (r *PricingRule) AppliesTo(unit *Unit) bool {
	if r.UnitID != nil {
		return *r.UnitID == unit.ID
	}
	return r.UnitType != "" && r.UnitType == unit.Type
}

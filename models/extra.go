package models

import (
	"gorm.io/gorm"
)

// Extra is a catalog item chargeable against a booking (minibar, breakfast, ...).
type Extra struct {
	gorm.Model

	Name  string  `json:"name" gorm:"size:100;uniqueIndex"`
	Price float64 `json:"price"`
}

// BookingExtra records a quantity of an extra added to a booking. TotalPrice is
// snapshotted at the catalog price in force when the extra was added; later
// catalog price changes do not reprice it.
type BookingExtra struct {
	gorm.Model

	BookingID  uint    `gorm:"index;column:booking_id" json:"booking_id"`
	ExtraID    uint    `gorm:"column:extra_id" json:"extra_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `gorm:"column:total_price" json:"total_price"`

	Extra Extra `gorm:"foreignKey:ExtraID" json:"extra,omitempty"`
}

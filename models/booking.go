package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCancelled  = "cancelled"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UnitID  uint `gorm:"index;column:unit_id" json:"unit_id"`
	GuestID uint `gorm:"index;column:guest_id" json:"guest_id"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	Status        string `gorm:"column:status;size:20;default:confirmed" json:"status"`

	// Calendar dates; a night belongs to the booking when check-in <= night < check-out.
	CheckInDate  time.Time `gorm:"column:check_in_date;type:date" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date;type:date" json:"check_out_date"`

	GuestsCount int `gorm:"column:guests_count;default:1" json:"guests_count"`

	// TotalAmount is the stay total snapshotted at creation time. Later pricing
	// rule changes never reprice an existing booking; billing trusts this value.
	TotalAmount float64 `gorm:"column:total_amount" json:"total_amount"`

	RealCheckIn  *time.Time `gorm:"column:real_check_in" json:"real_check_in,omitempty"`
	RealCheckOut *time.Time `gorm:"column:real_check_out" json:"real_check_out,omitempty"`

	Unit   Unit           `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Guest  Guest          `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Extras []BookingExtra `gorm:"foreignKey:BookingID" json:"extras,omitempty"`
}

// Nights returns the number of chargeable nights; the check-out day is not charged.
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

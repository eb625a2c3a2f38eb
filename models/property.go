package models

import (
	"time"
)

// Property holds the establishment settings edited from the admin dashboard.
// A single row is seeded; there is no multi-property support.
type Property struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Name       string `json:"name" gorm:"size:150"`
	Address    string `json:"address" gorm:"size:250"`
	Phone      string `json:"phone" gorm:"size:40"`
	Email      string `json:"email" gorm:"size:120"`
	WebsiteURL string `json:"website_url" gorm:"column:website_url;size:200"`
}

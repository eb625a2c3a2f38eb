package models

import (
	"time"

	"gorm.io/gorm"
)

type Guest struct {
	gorm.Model

	FullName   string `json:"full_name" gorm:"size:120"`
	Email      string `json:"email" gorm:"size:120;index"`
	Phone      string `json:"phone" gorm:"size:40"`
	DocumentID string `json:"document_id" gorm:"column:document_id;size:64"`
	Notes      string `json:"notes" gorm:"type:text"`

	// Portal access: a guest with a non-empty token and PortalEnabled=true can
	// authenticate into the guest portal. The token is revoked at check-out.
	PortalToken     string     `json:"-" gorm:"column:portal_token;size:128;index"`
	PortalEnabled   bool       `json:"portal_enabled" gorm:"default:false"`
	PortalInvitedAt *time.Time `json:"portal_invited_at,omitempty"`
}

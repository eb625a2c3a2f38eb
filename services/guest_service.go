package services

import (
	"fmt"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"gorm.io/gorm"
)

type GuestService struct {
	DB       *gorm.DB
	Activity *ActivityService
}

func NewGuestService(db *gorm.DB, activity *ActivityService) *GuestService {
	return &GuestService{DB: db, Activity: activity}
}

func (s *GuestService) Create(guest models.Guest) (models.Guest, error) {
	if err := s.DB.Create(&guest).Error; err != nil {
		return models.Guest{}, fmt.Errorf("failed to create guest: %w", err)
	}
	return guest, nil
}

func (s *GuestService) GetAll() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.Order("full_name").Find(&guests).Error
	return guests, err
}

func (s *GuestService) GetByID(id uint) (models.Guest, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, id).Error; err != nil {
		if isNotFound(err) {
			return models.Guest{}, ErrGuestNotFound
		}
		return models.Guest{}, fmt.Errorf("failed to find guest: %w", err)
	}
	return guest, nil
}

func (s *GuestService) Update(guest models.Guest) error {
	res := s.DB.Model(&models.Guest{}).Where("id = ?", guest.ID).Updates(guest)
	if res.Error != nil {
		return fmt.Errorf("failed to update guest: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrGuestNotFound
	}
	return nil
}

func (s *GuestService) Delete(id uint) error {
	res := s.DB.Delete(&models.Guest{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete guest: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrGuestNotFound
	}
	return nil
}

// EnablePortalAccess issues a fresh access token and mails the portal link.
// The invite email is best-effort; a send failure does not roll the token back.
func (s *GuestService) EnablePortalAccess(guestID uint, propertyName, baseURL string) (models.Guest, error) {
	guest, err := s.GetByID(guestID)
	if err != nil {
		return models.Guest{}, err
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return models.Guest{}, fmt.Errorf("failed to generate portal token: %w", err)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"portal_token":      token,
		"portal_enabled":    true,
		"portal_invited_at": now,
	}
	if err := s.DB.Model(&models.Guest{}).Where("id = ?", guestID).Updates(updates).Error; err != nil {
		return models.Guest{}, fmt.Errorf("failed to enable portal access: %w", err)
	}
	guest.PortalToken = token
	guest.PortalEnabled = true
	guest.PortalInvitedAt = &now

	if guest.Email != "" {
		link := fmt.Sprintf("%s/guest?token=%s", baseURL, token)
		if mailErr := utils.SendPortalInviteEmail(guest.Email, link, guest.FullName, propertyName); mailErr != nil {
			s.Activity.Record("portal_invite_failed",
				fmt.Sprintf("Invite email to %s failed", guest.Email),
				fmt.Sprint(guestID), map[string]interface{}{"error": mailErr.Error()})
		}
	}

	s.Activity.Record("portal_access_enabled",
		fmt.Sprintf("Portal access enabled for %s", guest.FullName),
		fmt.Sprint(guestID), nil)

	return guest, nil
}

func (s *GuestService) DisablePortalAccess(guestID uint) error {
	res := s.DB.Model(&models.Guest{}).Where("id = ?", guestID).
		Updates(map[string]interface{}{"portal_enabled": false, "portal_token": ""})
	if res.Error != nil {
		return fmt.Errorf("failed to disable portal access: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrGuestNotFound
	}
	return nil
}

// FindByPortalToken authenticates a guest portal request.
func (s *GuestService) FindByPortalToken(token string) (models.Guest, error) {
	if token == "" {
		return models.Guest{}, ErrPortalDisabled
	}
	var guest models.Guest
	err := s.DB.Where("portal_token = ? AND portal_enabled = ?", token, true).First(&guest).Error
	if err != nil {
		if isNotFound(err) {
			return models.Guest{}, ErrPortalDisabled
		}
		return models.Guest{}, fmt.Errorf("failed to find guest by token: %w", err)
	}
	return guest, nil
}

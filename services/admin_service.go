package services

import (
	"fmt"

	"property-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

func (s *AdminService) CreateAdmin(fullName, email, password, role string) (models.Admin, error) {
	if role != models.AdminRoleAdmin && role != models.AdminRoleReception {
		role = models.AdminRoleReception
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.Admin{
		FullName: fullName,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		return models.Admin{}, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

func (s *AdminService) ListAdmins() ([]models.Admin, error) {
	var admins []models.Admin
	err := s.DB.Order("full_name").Find(&admins).Error
	return admins, err
}

// GetProperty returns the settings row, seeded at boot.
func (s *AdminService) GetProperty() (models.Property, error) {
	var prop models.Property
	if err := s.DB.First(&prop).Error; err != nil {
		return models.Property{}, fmt.Errorf("failed to load property settings: %w", err)
	}
	return prop, nil
}

func (s *AdminService) UpdateProperty(prop models.Property) (models.Property, error) {
	current, err := s.GetProperty()
	if err != nil {
		return models.Property{}, err
	}
	updates := map[string]interface{}{
		"name":        prop.Name,
		"address":     prop.Address,
		"phone":       prop.Phone,
		"email":       prop.Email,
		"website_url": prop.WebsiteURL,
	}
	if err := s.DB.Model(&models.Property{}).Where("id = ?", current.ID).Updates(updates).Error; err != nil {
		return models.Property{}, fmt.Errorf("failed to update property settings: %w", err)
	}
	return s.GetProperty()
}

package services

import (
	"fmt"

	"property-backend/models"

	"gorm.io/gorm"
)

type UnitService struct {
	DB       *gorm.DB
	Activity *ActivityService
}

func NewUnitService(db *gorm.DB, activity *ActivityService) *UnitService {
	return &UnitService{DB: db, Activity: activity}
}

func (s *UnitService) Create(unit models.Unit) (models.Unit, error) {
	if unit.BasePrice < 0 {
		return models.Unit{}, ErrInvalidAmount
	}
	if unit.Status == "" {
		unit.Status = models.UnitStatusClean
	}
	if !models.ValidUnitStatus(unit.Status) {
		return models.Unit{}, ErrInvalidStatus
	}
	if err := s.DB.Create(&unit).Error; err != nil {
		return models.Unit{}, fmt.Errorf("failed to create unit: %w", err)
	}
	return unit, nil
}

func (s *UnitService) GetAll() ([]models.Unit, error) {
	var units []models.Unit
	err := s.DB.Order("name").Find(&units).Error
	return units, err
}

func (s *UnitService) GetByID(id uint) (models.Unit, error) {
	var unit models.Unit
	if err := s.DB.First(&unit, id).Error; err != nil {
		if isNotFound(err) {
			return models.Unit{}, ErrUnitNotFound
		}
		return models.Unit{}, fmt.Errorf("failed to find unit: %w", err)
	}
	return unit, nil
}

func (s *UnitService) Update(unit models.Unit) error {
	if unit.BasePrice < 0 {
		return ErrInvalidAmount
	}
	res := s.DB.Model(&models.Unit{}).Where("id = ?", unit.ID).Updates(unit)
	if res.Error != nil {
		return fmt.Errorf("failed to update unit: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUnitNotFound
	}
	return nil
}

// UpdateStatus moves the unit through the housekeeping state machine.
func (s *UnitService) UpdateStatus(id uint, status string) (models.Unit, error) {
	if !models.ValidUnitStatus(status) {
		return models.Unit{}, ErrInvalidStatus
	}
	unit, err := s.GetByID(id)
	if err != nil {
		return models.Unit{}, err
	}
	if err := s.DB.Model(&models.Unit{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return models.Unit{}, fmt.Errorf("failed to update unit status: %w", err)
	}
	unit.Status = status

	s.Activity.Record("unit_status_changed",
		fmt.Sprintf("Unit %s is now %s", unit.Name, status),
		fmt.Sprint(id), nil)

	return unit, nil
}

func (s *UnitService) Delete(id uint) error {
	res := s.DB.Delete(&models.Unit{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete unit: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUnitNotFound
	}
	return nil
}

func (s *UnitService) ListTypes() ([]models.UnitType, error) {
	var types []models.UnitType
	err := s.DB.Order("type_name").Find(&types).Error
	return types, err
}

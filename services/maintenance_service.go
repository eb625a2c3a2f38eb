package services

import (
	"fmt"
	"time"

	"property-backend/models"

	"gorm.io/gorm"
)

type MaintenanceService struct {
	DB       *gorm.DB
	Activity *ActivityService
}

func NewMaintenanceService(db *gorm.DB, activity *ActivityService) *MaintenanceService {
	return &MaintenanceService{DB: db, Activity: activity}
}

// CreateTicket opens a maintenance ticket; guestID is set for portal-reported
// issues, nil for staff-created ones.
func (s *MaintenanceService) CreateTicket(ticket models.MaintenanceTicket) (models.MaintenanceTicket, error) {
	var unit models.Unit
	if err := s.DB.First(&unit, ticket.UnitID).Error; err != nil {
		if isNotFound(err) {
			return models.MaintenanceTicket{}, ErrUnitNotFound
		}
		return models.MaintenanceTicket{}, fmt.Errorf("failed to find unit: %w", err)
	}

	if ticket.Status == "" {
		ticket.Status = models.TicketStatusOpen
	}
	if ticket.Priority == "" {
		ticket.Priority = models.TicketPriorityMedium
	}
	if err := s.DB.Create(&ticket).Error; err != nil {
		return models.MaintenanceTicket{}, fmt.Errorf("failed to create ticket: %w", err)
	}
	ticket.Unit = unit

	s.Activity.Record("ticket_created",
		fmt.Sprintf("Maintenance ticket %q for unit %s", ticket.Title, unit.Name),
		fmt.Sprint(ticket.ID),
		map[string]interface{}{"priority": ticket.Priority})

	return ticket, nil
}

func (s *MaintenanceService) ListTickets(status string) ([]models.MaintenanceTicket, error) {
	query := s.DB.Preload("Unit").Preload("Guest").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var tickets []models.MaintenanceTicket
	err := query.Find(&tickets).Error
	return tickets, err
}

func (s *MaintenanceService) TicketsForGuest(guestID uint) ([]models.MaintenanceTicket, error) {
	var tickets []models.MaintenanceTicket
	err := s.DB.Preload("Unit").Where("guest_id = ?", guestID).
		Order("created_at DESC").Find(&tickets).Error
	return tickets, err
}

// UpdateStatus advances a ticket and drives the unit status: a ticket moving to
// in_progress takes the unit out of service; a resolved ticket leaves the unit
// dirty so housekeeping passes before the next stay.
func (s *MaintenanceService) UpdateStatus(ticketID uint, status string) (models.MaintenanceTicket, error) {
	switch status {
	case models.TicketStatusOpen, models.TicketStatusInProgress, models.TicketStatusResolved:
	default:
		return models.MaintenanceTicket{}, ErrInvalidStatus
	}

	var ticket models.MaintenanceTicket
	if err := s.DB.Preload("Unit").First(&ticket, ticketID).Error; err != nil {
		if isNotFound(err) {
			return models.MaintenanceTicket{}, ErrTicketNotFound
		}
		return models.MaintenanceTicket{}, fmt.Errorf("failed to find ticket: %w", err)
	}

	updates := map[string]interface{}{"status": status}
	if status == models.TicketStatusResolved {
		now := time.Now().UTC()
		updates["resolved_at"] = now
		ticket.ResolvedAt = &now
	}
	if err := s.DB.Model(&models.MaintenanceTicket{}).Where("id = ?", ticketID).Updates(updates).Error; err != nil {
		return models.MaintenanceTicket{}, fmt.Errorf("failed to update ticket: %w", err)
	}
	ticket.Status = status

	var unitStatus string
	switch status {
	case models.TicketStatusInProgress:
		unitStatus = models.UnitStatusMaintenance
	case models.TicketStatusResolved:
		if ticket.Unit.Status == models.UnitStatusMaintenance {
			unitStatus = models.UnitStatusDirty
		}
	}
	if unitStatus != "" {
		if err := s.DB.Model(&models.Unit{}).Where("id = ?", ticket.UnitID).
			Update("status", unitStatus).Error; err != nil {
			return models.MaintenanceTicket{}, fmt.Errorf("failed to update unit status: %w", err)
		}
		ticket.Unit.Status = unitStatus
	}

	s.Activity.Record("ticket_updated",
		fmt.Sprintf("Maintenance ticket %d is %s", ticketID, status),
		fmt.Sprint(ticketID), nil)

	return ticket, nil
}

package controllers

import (
	"net/http"

	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateTicketRequest struct {
	UnitID      uint   `json:"unit_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MaintenanceController struct {
	MaintenanceSvc *services.MaintenanceService
}

func NewMaintenanceController(svc *services.MaintenanceService) *MaintenanceController {
	return &MaintenanceController{MaintenanceSvc: svc}
}

func (mc *MaintenanceController) ListTickets(c *gin.Context) {
	tickets, err := mc.MaintenanceSvc.ListTickets(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tickets)
}

func (mc *MaintenanceController) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	ticket, err := mc.MaintenanceSvc.CreateTicket(models.MaintenanceTicket{
		UnitID:      req.UnitID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, ticket)
}

func (mc *MaintenanceController) UpdateTicketStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	ticket, err := mc.MaintenanceSvc.UpdateStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, ticket)
}

package controllers

import (
	"net/http"
	"os"

	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSvc *services.GuestService
	AdminSvc *services.AdminService
}

func NewGuestController(guestSvc *services.GuestService, adminSvc *services.AdminService) *GuestController {
	return &GuestController{GuestSvc: guestSvc, AdminSvc: adminSvc}
}

func (gc *GuestController) ListGuests(c *gin.Context) {
	guests, err := gc.GuestSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (gc *GuestController) GetGuest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	guest, err := gc.GuestSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (gc *GuestController) CreateGuest(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	created, err := gc.GuestSvc.Create(guest)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (gc *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	guest.ID = id
	if err := gc.GuestSvc.Update(guest); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "guest_updated")
}

func (gc *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := gc.GuestSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "guest_deleted")
}

// EnablePortalAccess issues a portal token and sends the invite email.
func (gc *GuestController) EnablePortalAccess(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	propertyName := "Guest Portal"
	if prop, err := gc.AdminSvc.GetProperty(); err == nil && prop.Name != "" {
		propertyName = prop.Name
	}
	baseURL := utils.EnvOrDefault("PORTAL_BASE_URL", os.Getenv("APP_BASE_URL"))
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	guest, err := gc.GuestSvc.EnablePortalAccess(id, propertyName, baseURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (gc *GuestController) DisablePortalAccess(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := gc.GuestSvc.DisablePortalAccess(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "portal_access_disabled")
}

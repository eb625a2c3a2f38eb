package controllers

import (
	"net/http"

	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateAdminRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

type AdminController struct {
	AdminSvc    *services.AdminService
	ActivitySvc *services.ActivityService
}

func NewAdminController(adminSvc *services.AdminService, activitySvc *services.ActivityService) *AdminController {
	return &AdminController{AdminSvc: adminSvc, ActivitySvc: activitySvc}
}

func (ac *AdminController) ListAdmins(c *gin.Context) {
	admins, err := ac.AdminSvc.ListAdmins()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, admins)
}

func (ac *AdminController) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	admin, err := ac.AdminSvc.CreateAdmin(req.FullName, req.Email, req.Password, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, admin)
}

func (ac *AdminController) GetProperty(c *gin.Context) {
	prop, err := ac.AdminSvc.GetProperty()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, prop)
}

func (ac *AdminController) UpdateProperty(c *gin.Context) {
	var prop models.Property
	if err := c.ShouldBindJSON(&prop); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	updated, err := ac.AdminSvc.UpdateProperty(prop)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, updated)
}

func (ac *AdminController) RecentActivity(c *gin.Context) {
	entries, err := ac.ActivitySvc.Recent(50)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, entries)
}

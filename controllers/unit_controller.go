package controllers

import (
	"net/http"

	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateUnitStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UnitController struct {
	UnitSvc *services.UnitService
}

func NewUnitController(svc *services.UnitService) *UnitController {
	return &UnitController{UnitSvc: svc}
}

func (uc *UnitController) ListUnits(c *gin.Context) {
	units, err := uc.UnitSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, units)
}

func (uc *UnitController) GetUnit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	unit, err := uc.UnitSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, unit)
}

func (uc *UnitController) CreateUnit(c *gin.Context) {
	var unit models.Unit
	if err := c.ShouldBindJSON(&unit); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	created, err := uc.UnitSvc.Create(unit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (uc *UnitController) UpdateUnit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var unit models.Unit
	if err := c.ShouldBindJSON(&unit); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	unit.ID = id
	if err := uc.UnitSvc.Update(unit); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "unit_updated")
}

func (uc *UnitController) UpdateUnitStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateUnitStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	unit, err := uc.UnitSvc.UpdateStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, unit)
}

func (uc *UnitController) DeleteUnit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := uc.UnitSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "unit_deleted")
}

func (uc *UnitController) ListUnitTypes(c *gin.Context) {
	types, err := uc.UnitSvc.ListTypes()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

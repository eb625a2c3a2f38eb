package controllers

import (
	"net/http"

	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateTaskRequest struct {
	UnitID     uint   `json:"unit_id" binding:"required"`
	TaskType   string `json:"task_type"`
	Notes      string `json:"notes"`
	AssignedTo *uint  `json:"assigned_to"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type HousekeepingController struct {
	HousekeepingSvc *services.HousekeepingService
}

func NewHousekeepingController(svc *services.HousekeepingService) *HousekeepingController {
	return &HousekeepingController{HousekeepingSvc: svc}
}

func (hc *HousekeepingController) ListTasks(c *gin.Context) {
	tasks, err := hc.HousekeepingSvc.ListTasks(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tasks)
}

func (hc *HousekeepingController) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	task, err := hc.HousekeepingSvc.CreateTask(models.HousekeepingTask{
		UnitID:     req.UnitID,
		TaskType:   req.TaskType,
		Notes:      req.Notes,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, task)
}

func (hc *HousekeepingController) UpdateTaskStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	task, err := hc.HousekeepingSvc.UpdateStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, task)
}

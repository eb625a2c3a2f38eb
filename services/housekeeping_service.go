package services

import (
	"fmt"
	"time"

	"property-backend/models"

	"gorm.io/gorm"
)

type HousekeepingService struct {
	DB       *gorm.DB
	Activity *ActivityService
}

func NewHousekeepingService(db *gorm.DB, activity *ActivityService) *HousekeepingService {
	return &HousekeepingService{DB: db, Activity: activity}
}

func (s *HousekeepingService) CreateTask(task models.HousekeepingTask) (models.HousekeepingTask, error) {
	var unit models.Unit
	if err := s.DB.First(&unit, task.UnitID).Error; err != nil {
		if isNotFound(err) {
			return models.HousekeepingTask{}, ErrUnitNotFound
		}
		return models.HousekeepingTask{}, fmt.Errorf("failed to find unit: %w", err)
	}

	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	if task.TaskType == "" {
		task.TaskType = "cleaning"
	}
	if err := s.DB.Create(&task).Error; err != nil {
		return models.HousekeepingTask{}, fmt.Errorf("failed to create task: %w", err)
	}
	task.Unit = unit

	s.Activity.Record("task_created",
		fmt.Sprintf("Housekeeping task for unit %s", unit.Name),
		fmt.Sprint(task.ID), nil)

	return task, nil
}

func (s *HousekeepingService) ListTasks(status string) ([]models.HousekeepingTask, error) {
	query := s.DB.Preload("Unit").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var tasks []models.HousekeepingTask
	err := query.Find(&tasks).Error
	return tasks, err
}

// UpdateStatus advances a task; completing a cleaning task on a dirty unit
// marks the unit clean again.
func (s *HousekeepingService) UpdateStatus(taskID uint, status string) (models.HousekeepingTask, error) {
	switch status {
	case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusDone:
	default:
		return models.HousekeepingTask{}, ErrInvalidStatus
	}

	var task models.HousekeepingTask
	if err := s.DB.Preload("Unit").First(&task, taskID).Error; err != nil {
		if isNotFound(err) {
			return models.HousekeepingTask{}, ErrTaskNotFound
		}
		return models.HousekeepingTask{}, fmt.Errorf("failed to find task: %w", err)
	}

	updates := map[string]interface{}{"status": status}
	if status == models.TaskStatusDone {
		now := time.Now().UTC()
		updates["completed_at"] = now
		task.CompletedAt = &now
	}
	if err := s.DB.Model(&models.HousekeepingTask{}).Where("id = ?", taskID).Updates(updates).Error; err != nil {
		return models.HousekeepingTask{}, fmt.Errorf("failed to update task: %w", err)
	}
	task.Status = status

	if status == models.TaskStatusDone && task.Unit.Status == models.UnitStatusDirty {
		if err := s.DB.Model(&models.Unit{}).Where("id = ?", task.UnitID).
			Update("status", models.UnitStatusClean).Error; err != nil {
			return models.HousekeepingTask{}, fmt.Errorf("failed to update unit status: %w", err)
		}
		task.Unit.Status = models.UnitStatusClean
	}

	s.Activity.Record("task_updated",
		fmt.Sprintf("Housekeeping task %d is %s", taskID, status),
		fmt.Sprint(taskID), nil)

	return task, nil
}

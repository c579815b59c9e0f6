package services

import (
	"machineguard/model"

	"gorm.io/gorm"
)

func GetUserData(db *gorm.DB, userID uint) (*model.User, error) {
	var user model.User
	if err := db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetMachineData(db *gorm.DB, machineID int) (*model.Machine, error) {
	var machine model.Machine
	if err := db.Where("machine_id = ?", machineID).First(&machine).Error; err != nil {
		return nil, err
	}
	return &machine, nil
}

func GetRunData(db *gorm.DB, runID int) (*model.ChecklistRun, error) {
	var run model.ChecklistRun
	if err := db.Where("run_id = ?", runID).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func GetTaskData(db *gorm.DB, taskID int) (*model.MaintenanceTask, error) {
	var task model.MaintenanceTask
	if err := db.Where("task_id = ?", taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

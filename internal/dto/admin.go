package dto

// ── 管理模块 DTO ──

// RoleChangeRequest 提升/降级请求
type RoleChangeRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// ImportRosterResponse 学生花名册导入结果
type ImportRosterResponse struct {
	UpdatedCount int `json:"updated_count"`
}

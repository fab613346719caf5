package model

import "time"

// 申请状态：none → pending → approved，拒绝/撤回即删除记录
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
)

// JobApplication 职位申请表 — 对应 job_applications
// (job_id, student_id) 唯一约束保证同一学生对同一职位只有一条申请
type JobApplication struct {
	ID        uint      `gorm:"primaryKey"                               json:"id"`
	JobID     uint      `gorm:"not null;uniqueIndex:uq_job_student"      json:"job_id"`
	StudentID uint      `gorm:"not null;uniqueIndex:uq_job_student"      json:"student_id"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AppliedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"       json:"applied_at"`
}

// TableName 指定表名
func (JobApplication) TableName() string { return "job_applications" }

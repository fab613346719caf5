package dto

import "github.com/tjmanoj/gce-placify/internal/model"

// ── 申请模块 DTO ──

// ApplicationWithStudent 申请记录与学生身份字段的联查结果
type ApplicationWithStudent struct {
	ApplicationID     uint   `json:"application_id"`
	JobID             uint   `json:"job_id"`
	StudentID         uint   `json:"student_id"`
	Status            string `json:"status"`
	AppliedAt         string `json:"applied_at"`
	StudentName       string `json:"student_name"`
	StudentEmail      string `json:"student_email"`
	StudentRollNumber string `json:"student_roll_number"`
}

// ApplicationListResponse 申请列表响应
type ApplicationListResponse struct {
	Applications []ApplicationWithStudent `json:"applications"`
}

// ApplicationStatusResponse 申请状态查询响应
type ApplicationStatusResponse struct {
	Applied bool `json:"applied"`
}

// EligibilityResponse 资格判定响应
type EligibilityResponse struct {
	Eligible bool `json:"eligible"`
}

// ApproveAllResponse 批量批准响应，返回本次被更新的申请集合
type ApproveAllResponse struct {
	ApprovedApplications []model.JobApplication `json:"approved_applications"`
}

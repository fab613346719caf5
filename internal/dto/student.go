package dto

// ── 学生模块 DTO ──

// StudentProfileResponse 学生档案响应
type StudentProfileResponse struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	PhoneNumber     string   `json:"phone_number"`
	RollNumber      string   `json:"roll_number"`
	Department      string   `json:"department"`
	GraduationYear  int      `json:"graduation_year"`
	CGPA            float64  `json:"cgpa"`
	HistoryOfArrear int      `json:"history_of_arrear"`
	StandingArrear  int      `json:"standing_arrear"`
	ResumeURL       string   `json:"resume_url"`
	Skills          []string `json:"skills"`
}

// UpdateProfileRequest 学生档案更新请求
// 姓名、邮箱、手机号必填（与前端表单约定一致）
type UpdateProfileRequest struct {
	Name            string         `json:"name"         binding:"required"`
	Email           string         `json:"email"        binding:"required,email"`
	PhoneNumber     string         `json:"phone_number" binding:"required"`
	RollNumber      string         `json:"roll_number"`
	Department      string         `json:"department"`
	GraduationYear  int            `json:"graduation_year"`
	CGPA            float64        `json:"cgpa"`
	HistoryOfArrear int            `json:"history_of_arrear"`
	StandingArrear  int            `json:"standing_arrear"`
	ResumeURL       string         `json:"resume_url"`
	Skills          FlexStringList `json:"skills"`
}

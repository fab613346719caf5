package dto

// ── 认证模块 DTO ──

// SignupRequest 注册请求（第一步：发送 OTP）
type SignupRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

// VerifyOTPRequest 注册确认请求（第二步：校验 OTP）
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   int    `json:"otp"   binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应：Token + 角色
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// UserResponse 用户基础信息响应（GET /auth/me）
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

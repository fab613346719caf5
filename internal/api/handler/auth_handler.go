package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tjmanoj/gce-placify/internal/dto"
	"github.com/tjmanoj/gce-placify/internal/service"
	"github.com/tjmanoj/gce-placify/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Signup 注册第一步：发送 OTP 到校园邮箱
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.Signup(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmailDomain):
			response.BadRequest(c, 11002, "仅允许使用校园邮箱注册")
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, 11003, "邮箱已被注册")
		case errors.Is(err, service.ErrSignupUnavailable):
			response.Error(c, http.StatusServiceUnavailable, 11004, "注册服务暂不可用，请稍后再试")
		case errors.Is(err, service.ErrOTPSendFailed):
			response.Error(c, http.StatusBadGateway, 11005, "验证码发送失败，请稍后再试")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMessage(c, "验证码已发送至邮箱")
}

// VerifyOTP 注册第二步：校验 OTP 并创建账号
// POST /api/v1/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.VerifyOTP(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOTP):
			response.BadRequest(c, 11006, "验证码无效或已过期")
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, 11003, "邮箱已被注册")
		case errors.Is(err, service.ErrSignupUnavailable):
			response.Error(c, http.StatusServiceUnavailable, 11004, "注册服务暂不可用，请稍后再试")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, nil)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11007, "用户不存在")
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, 11001, "邮箱或密码错误")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Logout 用户登出：Token 加入黑名单
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("token_jti")
	exp, _ := c.Get("token_exp")
	expiresAt, _ := exp.(time.Time)

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "已登出")
}

// Me 获取当前登录用户信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11007, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

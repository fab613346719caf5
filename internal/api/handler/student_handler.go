package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tjmanoj/gce-placify/internal/dto"
	"github.com/tjmanoj/gce-placify/internal/service"
	"github.com/tjmanoj/gce-placify/pkg/response"
)

// StudentHandler 学生档案模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// Profile 获取当前学生档案
// GET /api/v1/students/profile
func (h *StudentHandler) Profile(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.studentSvc.Profile(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 15001, "学生不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateProfile 更新当前学生档案
// PUT /api/v1/students/update-profile
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.studentSvc.UpdateProfile(c.Request.Context(), studentID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmailDomain):
			response.BadRequest(c, 11002, "仅允许使用校园邮箱")
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 15001, "学生不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMessage(c, "档案已更新")
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tjmanoj/gce-placify/internal/dto"
	"github.com/tjmanoj/gce-placify/internal/service"
	"github.com/tjmanoj/gce-placify/pkg/response"
)

// AdminHandler 角色管理与花名册导入 HTTP 处理器
type AdminHandler struct {
	adminSvc  service.AdminService
	rosterSvc service.RosterService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService, rosterSvc service.RosterService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, rosterSvc: rosterSvc}
}

// Promote 提升用户为管理员
// POST /api/v1/admin/promote
func (h *AdminHandler) Promote(c *gin.Context) {
	var req dto.RoleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.adminSvc.PromoteToAdmin(c.Request.Context(), req.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrAlreadyAdmin):
			response.Conflict(c, 12002, "该用户已是管理员")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMessage(c, "已提升为管理员")
}

// Demote 将管理员降回学生
// POST /api/v1/admin/demote
func (h *AdminHandler) Demote(c *gin.Context) {
	var req dto.RoleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.adminSvc.DemoteToStudent(c.Request.Context(), req.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrNotAdmin):
			response.Conflict(c, 12003, "该用户不是管理员")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMessage(c, "已降级为学生")
}

// UploadStudents 上传学生花名册 Excel，按学号更新已有学生档案
// POST /api/v1/admin/upload-students
// multipart/form-data, field="file"
func (h *AdminHandler) UploadStudents(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 12004, "请上传花名册 Excel 文件")
		return
	}
	defer file.Close()

	rows, err := h.rosterSvc.ParseRosterFile(file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRosterNoData):
			response.BadRequest(c, 12005, "Excel 文件无数据行")
		case errors.Is(err, service.ErrRosterBadHeader):
			response.BadRequest(c, 12006, "Excel 表头缺少 roll_number 列")
		case errors.Is(err, service.ErrRosterTooManyRows):
			response.BadRequest(c, 12007, "数据行数超过上限")
		default:
			response.BadRequest(c, 12008, "Excel 文件解析失败")
		}
		return
	}

	result, err := h.rosterSvc.ImportRoster(c.Request.Context(), rows)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

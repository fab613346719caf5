package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tjmanoj/gce-placify/internal/dto"
	"github.com/tjmanoj/gce-placify/internal/service"
	"github.com/tjmanoj/gce-placify/pkg/response"
)

// ApplicationHandler 职位申请模块 HTTP 处理器
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler 创建 ApplicationHandler
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// Apply 学生申请职位
// POST /api/v1/jobs/:job_id/apply
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, ok := parseUintParam(c, "job_id")
	if !ok {
		return
	}
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.appSvc.Apply(c.Request.Context(), jobID, studentID); err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			response.NotFound(c, 13001, "职位不存在")
		case errors.Is(err, service.ErrAlreadyApplied):
			response.Conflict(c, 14001, "已申请过该职位")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, nil)
}

// Approve 批准单个申请
// PUT /api/v1/jobs/:job_id/approve/:student_id
func (h *ApplicationHandler) Approve(c *gin.Context) {
	jobID, ok := parseUintParam(c, "job_id")
	if !ok {
		return
	}
	studentID, ok := parseUintParam(c, "student_id")
	if !ok {
		return
	}

	if err := h.appSvc.Approve(c.Request.Context(), jobID, studentID); err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			response.NotFound(c, 14002, "申请记录不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "申请已批准")
}

// ApproveAll 批量批准职位下全部待处理申请
// PUT /api/v1/jobs/:job_id/approve-all
func (h *ApplicationHandler) ApproveAll(c *gin.Context) {
	jobID, ok := parseUintParam(c, "job_id")
	if !ok {
		return
	}

	result, err := h.appSvc.ApproveAll(c.Request.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			response.NotFound(c, 13001, "职位不存在")
		case errors.Is(err, service.ErrNoPendingApplications):
			response.NotFound(c, 14003, "该职位没有待处理的申请")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Reject 拒绝申请（删除记录）
// DELETE /api/v1/jobs/:job_id/reject/:student_id
func (h *ApplicationHandler) Reject(c *gin.Context) {
	jobID, ok := parseUintParam(c, "job_id")
	if !ok {
		return
	}
	studentID, ok := parseUintParam(c, "student_id")
	if !ok {
		return
	}

	if err := h.appSvc.Reject(c.Request.Context(), jobID, studentID); err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			response.NotFound(c, 14002, "申请记录不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "申请已拒绝")
}

// Revoke 学生撤回自己的申请
// DELETE /api/v1/jobs/:job_id/revoke-application
func (h *ApplicationHandler) Revoke(c *gin.Context) {
	jobID, ok := parseUintParam(c, "job_id")
	if !ok {
		return
	}
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.appSvc.Revoke(c.Request.Context(), jobID, studentID); err != nil {
		if errors.Is(err, service.ErrNotApplied) {
			response.NotFound(c, 14004, "未申请该职位")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "申请已撤回")
}

// Status 查询当前学生对职位的申请状态
// GET /api/v1/jobs/:job_id/application-status
func (h *ApplicationHandler) Status(c *gin.Context) {
	jobID, ok := parseUintParam(c, "job_id")
	if !ok {
		return
	}
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.appSvc.Status(c.Request.Context(), jobID, studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Eligibility 资格判定：当前学生是否满足职位门槛
// GET /api/v1/jobs/:job_id/check-eligibility
func (h *ApplicationHandler) Eligibility(c *gin.Context) {
	jobID, ok := parseUintParam(c, "job_id")
	if !ok {
		return
	}
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.appSvc.Eligibility(c.Request.Context(), jobID, studentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			response.NotFound(c, 13001, "职位不存在")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// ListPending 列出职位的待处理申请
// GET /api/v1/jobs/:job_id/pending-approvals
func (h *ApplicationHandler) ListPending(c *gin.Context) {
	h.listByStatus(c, h.appSvc.ListPending)
}

// ListApproved 列出职位的已批准申请
// GET /api/v1/jobs/:job_id/approved-students
func (h *ApplicationHandler) ListApproved(c *gin.Context) {
	h.listByStatus(c, h.appSvc.ListApproved)
}

func (h *ApplicationHandler) listByStatus(
	c *gin.Context,
	list func(ctx context.Context, jobID uint) (*dto.ApplicationListResponse, error),
) {
	jobID, ok := parseUintParam(c, "job_id")
	if !ok {
		return
	}

	result, err := list(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.NotFound(c, 13001, "职位不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

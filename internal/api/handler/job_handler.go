package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/tjmanoj/gce-placify/internal/dto"
	"github.com/tjmanoj/gce-placify/internal/service"
	"github.com/tjmanoj/gce-placify/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// JobHandler 职位模块 HTTP 处理器
type JobHandler struct {
	jobSvc    service.JobService
	rosterSvc service.RosterService
}

// NewJobHandler 创建 JobHandler
func NewJobHandler(jobSvc service.JobService, rosterSvc service.RosterService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc, rosterSvc: rosterSvc}
}

// Create 创建职位
// POST /api/v1/jobs/add
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	job, err := h.jobSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, job)
}

// Get 查询单个职位
// GET /api/v1/jobs/:job_id
func (h *JobHandler) Get(c *gin.Context) {
	jobID, ok := parseUintParam(c, "job_id")
	if !ok {
		return
	}

	job, err := h.jobSvc.GetByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.NotFound(c, 13001, "职位不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, job)
}

// List 分页列出在招职位
// GET /api/v1/jobs?page=N
func (h *JobHandler) List(c *gin.Context) {
	var req dto.JobListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.jobSvc.List(c.Request.Context(), req.GetPage())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Update 编辑职位
// PUT /api/v1/jobs/:job_id
func (h *JobHandler) Update(c *gin.Context) {
	jobID, ok := parseUintParam(c, "job_id")
	if !ok {
		return
	}

	var req dto.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	job, err := h.jobSvc.Update(c.Request.Context(), jobID, &req)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.NotFound(c, 13001, "职位不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, job)
}

// Delete 删除职位
// DELETE /api/v1/jobs/:job_id
func (h *JobHandler) Delete(c *gin.Context) {
	jobID, ok := parseUintParam(c, "job_id")
	if !ok {
		return
	}

	if err := h.jobSvc.Delete(c.Request.Context(), jobID); err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.NotFound(c, 13001, "职位不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "职位已删除")
}

// DownloadApplicants 导出职位申请表 Excel
// GET /api/v1/jobs/download-applied/:job_id
func (h *JobHandler) DownloadApplicants(c *gin.Context) {
	jobID, ok := parseUintParam(c, "job_id")
	if !ok {
		return
	}

	buf, filename, err := h.rosterSvc.ExportApplicants(c.Request.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			response.NotFound(c, 13001, "职位不存在")
		case errors.Is(err, service.ErrNoApplicants):
			response.NotFound(c, 13002, "该职位暂无申请记录")
		default:
			response.InternalError(c)
		}
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

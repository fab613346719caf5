package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tjmanoj/gce-placify/internal/dto"
	"github.com/tjmanoj/gce-placify/internal/service"
	"github.com/tjmanoj/gce-placify/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// Subscribe 登记浏览器推送订阅
// POST /api/v1/notifications/subscribe
func (h *NotificationHandler) Subscribe(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.notificationSvc.Subscribe(c.Request.Context(), userID, &req); err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, nil)
}

package handler

import "github.com/tjmanoj/gce-placify/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Admin        *AdminHandler
	Job          *JobHandler
	Application  *ApplicationHandler
	Student      *StudentHandler
	Notification *NotificationHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Admin:        NewAdminHandler(svc.Admin, svc.Roster),
		Job:          NewJobHandler(svc.Job, svc.Roster),
		Application:  NewApplicationHandler(svc.Application),
		Student:      NewStudentHandler(svc.Student),
		Notification: NewNotificationHandler(svc.Notification),
	}
}

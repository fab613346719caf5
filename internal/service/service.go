package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tjmanoj/gce-placify/config"
	"github.com/tjmanoj/gce-placify/internal/repository"
	"github.com/tjmanoj/gce-placify/pkg/jwt"
	"github.com/tjmanoj/gce-placify/pkg/redis"
)

// MailSender 邮件发送抽象（pkg/mailer 实现；测试中可替换）
type MailSender interface {
	Send(to, subject, body string) error
}

// AuthStateStore 注册待确认记录与 Token 黑名单的进程外存储抽象
// （pkg/redis 实现；测试中可替换）。为 nil 时注册流程明确拒绝、登出退化为
// 客户端丢弃 Token
type AuthStateStore interface {
	SetPendingSignup(ctx context.Context, p *redis.PendingSignup, ttl time.Duration) error
	TakePendingSignup(ctx context.Context, email string) (*redis.PendingSignup, error)
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// PushSender Web Push 发送抽象（pkg/webpush 实现；测试中可替换）
type PushSender interface {
	Send(subscriptionJSON []byte, payload []byte) error
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Admin        AdminService
	Job          JobService
	Application  ApplicationService
	Student      StudentService
	Notification NotificationService
	Roster       RosterService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail MailSender,
	push PushSender,
	logger *zap.Logger,
) *Service {
	notification := NewNotificationService(repo, mail, push, logger)

	// *redis.Client 为 nil 时必须保持接口值为 nil，服务层据此走降级路径
	var authStore AuthStateStore
	if rdb != nil {
		authStore = rdb
	}

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, authStore, mail, logger),
		Admin:        NewAdminService(repo, logger),
		Job:          NewJobService(repo, notification, logger),
		Application:  NewApplicationService(repo, logger),
		Student:      NewStudentService(cfg, repo, logger),
		Notification: notification,
		Roster:       NewRosterService(repo, logger),
	}
}

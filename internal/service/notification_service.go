package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/tjmanoj/gce-placify/internal/dto"
	"github.com/tjmanoj/gce-placify/internal/model"
	"github.com/tjmanoj/gce-placify/internal/repository"
)

// NotificationService 通知业务接口
type NotificationService interface {
	// Subscribe 登记/覆盖学生的浏览器推送订阅
	Subscribe(ctx context.Context, userID uint, req *dto.SubscribeRequest) error
	// JobPosted 新职位扇出：邮件发给全体学生，推送发给全部订阅。
	// 逐个投递，单个失败只记日志，不中断后续投递、不向调用方报错
	JobPosted(ctx context.Context, job *model.Job)
}

type notificationService struct {
	repo   *repository.Repository
	mail   MailSender
	push   PushSender
	logger *zap.Logger
}

func NewNotificationService(repo *repository.Repository, mail MailSender, push PushSender, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, mail: mail, push: push, logger: logger}
}

func (s *notificationService) Subscribe(ctx context.Context, userID uint, req *dto.SubscribeRequest) error {
	sub := &model.PushSubscription{
		UserID:       userID,
		Subscription: []byte(req.Subscription),
	}
	if err := s.repo.Subscription.Upsert(ctx, sub); err != nil {
		s.logger.Error("保存推送订阅失败", zap.Uint("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *notificationService) JobPosted(ctx context.Context, job *model.Job) {
	subject := fmt.Sprintf("New Job Posted: %s at %s", job.JobTitle, job.OrganisationTitle)
	body := fmt.Sprintf("A new job has been posted.\n\nRole: %s\nOrganisation: %s\nApply by: %s\n\nLog in to the placement portal to apply.",
		job.JobTitle, job.OrganisationTitle, job.ApplyBy)

	emails, err := s.repo.User.ListStudentEmails(ctx)
	if err != nil {
		s.logger.Error("读取学生邮箱列表失败", zap.Error(err))
	}
	for _, email := range emails {
		if err := s.mail.Send(email, subject, body); err != nil {
			s.logger.Warn("职位通知邮件发送失败",
				zap.String("email", email), zap.Uint("job_id", job.ID), zap.Error(err))
		}
	}

	payload, err := json.Marshal(map[string]string{
		"title": subject,
		"body":  fmt.Sprintf("%s · %s · apply by %s", job.JobTitle, job.OrganisationTitle, job.ApplyBy),
	})
	if err != nil {
		s.logger.Error("序列化推送消息失败", zap.Error(err))
		return
	}

	subs, err := s.repo.Subscription.ListAll(ctx)
	if err != nil {
		s.logger.Error("读取推送订阅列表失败", zap.Error(err))
		return
	}
	for _, sub := range subs {
		if err := s.push.Send(sub.Subscription, payload); err != nil {
			s.logger.Warn("职位推送发送失败",
				zap.Uint("user_id", sub.UserID), zap.Uint("job_id", job.ID), zap.Error(err))
		}
	}

	s.logger.Info("职位通知扇出完成",
		zap.Uint("job_id", job.ID),
		zap.Int("emails", len(emails)),
		zap.Int("subscriptions", len(subs)))
}

package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tjmanoj/gce-placify/internal/model"
	"github.com/tjmanoj/gce-placify/internal/repository"
)

var (
	ErrAlreadyAdmin = errors.New("该用户已是管理员")
	ErrNotAdmin     = errors.New("该用户不是管理员")
)

// AdminService 角色管理业务接口
type AdminService interface {
	// PromoteToAdmin 将用户提升为管理员。
	// 条件更新保证并发下不会重复提升
	PromoteToAdmin(ctx context.Context, userID uint) error
	// DemoteToStudent 将管理员降回学生
	DemoteToStudent(ctx context.Context, userID uint) error
}

type adminService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewAdminService(repo *repository.Repository, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, logger: logger}
}

func (s *adminService) PromoteToAdmin(ctx context.Context, userID uint) error {
	affected, err := s.repo.User.PromoteToAdmin(ctx, userID)
	if err != nil {
		s.logger.Error("提升管理员失败", zap.Uint("user_id", userID), zap.Error(err))
		return err
	}
	if affected == 0 {
		// 区分用户不存在与已是管理员
		user, err := s.repo.User.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.Role == model.RoleAdmin {
			return ErrAlreadyAdmin
		}
		return ErrUserNotFound
	}

	s.logger.Info("用户已提升为管理员", zap.Uint("user_id", userID))
	return nil
}

func (s *adminService) DemoteToStudent(ctx context.Context, userID uint) error {
	affected, err := s.repo.User.DemoteToStudent(ctx, userID)
	if err != nil {
		s.logger.Error("降级管理员失败", zap.Uint("user_id", userID), zap.Error(err))
		return err
	}
	if affected == 0 {
		_, err := s.repo.User.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		return ErrNotAdmin
	}

	s.logger.Info("管理员已降级为学生", zap.Uint("user_id", userID))
	return nil
}

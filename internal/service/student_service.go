package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tjmanoj/gce-placify/config"
	"github.com/tjmanoj/gce-placify/internal/dto"
	"github.com/tjmanoj/gce-placify/internal/model"
	"github.com/tjmanoj/gce-placify/internal/repository"
)

var ErrStudentNotFound = errors.New("学生不存在")

// StudentService 学生档案业务接口
type StudentService interface {
	Profile(ctx context.Context, studentID uint) (*dto.StudentProfileResponse, error)
	// UpdateProfile 更新学生档案，邮箱须为校园邮箱。
	// 条件更新保证只有 student 角色的行会被修改
	UpdateProfile(ctx context.Context, studentID uint, req *dto.UpdateProfileRequest) error
}

type studentService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

func NewStudentService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{cfg: cfg, repo: repo, logger: logger}
}

func (s *studentService) Profile(ctx context.Context, studentID uint) (*dto.StudentProfileResponse, error) {
	user, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生档案失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}

	return &dto.StudentProfileResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		PhoneNumber:     user.PhoneNumber,
		RollNumber:      user.RollNumber,
		Department:      user.Department,
		GraduationYear:  user.GraduationYear,
		CGPA:            user.CGPA,
		HistoryOfArrear: user.HistoryOfArrear,
		StandingArrear:  user.StandingArrear,
		ResumeURL:       user.ResumeURL,
		Skills:          []string(user.Skills),
	}, nil
}

func (s *studentService) UpdateProfile(ctx context.Context, studentID uint, req *dto.UpdateProfileRequest) error {
	if !strings.HasSuffix(req.Email, s.cfg.Auth.EmailDomain) {
		return ErrInvalidEmailDomain
	}

	user := &model.User{
		ID:              studentID,
		Name:            req.Name,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		RollNumber:      req.RollNumber,
		Department:      req.Department,
		GraduationYear:  req.GraduationYear,
		CGPA:            req.CGPA,
		HistoryOfArrear: req.HistoryOfArrear,
		StandingArrear:  req.StandingArrear,
		ResumeURL:       req.ResumeURL,
		Skills:          []string(req.Skills),
	}
	if user.Skills == nil {
		user.Skills = []string{}
	}

	affected, err := s.repo.User.UpdateStudentProfile(ctx, user)
	if err != nil {
		s.logger.Error("更新学生档案失败", zap.Uint("student_id", studentID), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tjmanoj/gce-placify/config"
	"github.com/tjmanoj/gce-placify/internal/dto"
	"github.com/tjmanoj/gce-placify/internal/model"
	"github.com/tjmanoj/gce-placify/internal/repository"
	"github.com/tjmanoj/gce-placify/pkg/jwt"
	"github.com/tjmanoj/gce-placify/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidEmailDomain = errors.New("仅允许使用校园邮箱")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidOTP         = errors.New("验证码无效或已过期")
	ErrSignupUnavailable  = errors.New("注册服务暂不可用")
	ErrOTPSendFailed      = errors.New("验证码发送失败")
)

// AuthService 认证业务接口
type AuthService interface {
	// Signup 第一步：校验邮箱域名，生成 OTP 并发送到邮箱，
	// 待确认记录写入 Redis（同邮箱重复发起时覆盖旧验证码）
	Signup(ctx context.Context, req *dto.SignupRequest) error
	// VerifyOTP 第二步：校验 OTP 并创建学生账号。
	// 验证码一次性消费：校验失败同样作废
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout 将 Token 的 jti 加入黑名单直至其自然过期
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, id uint) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	store  AuthStateStore
	mail   MailSender
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	store AuthStateStore,
	mail MailSender,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		store:  store,
		mail:   mail,
		logger: logger,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) error {
	if !strings.HasSuffix(req.Email, s.cfg.Auth.EmailDomain) {
		return ErrInvalidEmailDomain
	}
	if s.store == nil {
		return ErrSignupUnavailable
	}

	// 邮箱已注册则直接拒绝，避免白发一封验证码邮件
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		s.logger.Error("生成验证码失败", zap.Error(err))
		return err
	}

	pending := &redis.PendingSignup{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		OTP:          otp,
	}
	if err := s.store.SetPendingSignup(ctx, pending, s.cfg.Auth.OTPTTL); err != nil {
		s.logger.Error("写入待确认注册记录失败", zap.Error(err))
		return err
	}

	body := fmt.Sprintf("Your OTP is: %d. It is valid for %d minutes.",
		otp, int(s.cfg.Auth.OTPTTL.Minutes()))
	if err := s.mail.Send(req.Email, "Your OTP for Signup", body); err != nil {
		s.logger.Error("发送验证码邮件失败", zap.String("email", req.Email), zap.Error(err))
		return ErrOTPSendFailed
	}

	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) error {
	if s.store == nil {
		return ErrSignupUnavailable
	}

	pending, err := s.store.TakePendingSignup(ctx, req.Email)
	if err != nil {
		if errors.Is(err, redis.ErrPendingSignupNotFound) {
			return ErrInvalidOTP
		}
		s.logger.Error("读取待确认注册记录失败", zap.Error(err))
		return err
	}

	if pending.OTP != req.OTP {
		return ErrInvalidOTP
	}

	user := &model.User{
		Name:         pending.Name,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		Role:         model.RoleStudent,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailExists
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return err
	}

	s.logger.Info("用户注册成功", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	return nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateToken(user.ID, user.Role.String())
	if err != nil {
		s.logger.Error("签发 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		Role:  user.Role.String(),
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.store == nil || jti == "" {
		return nil // 黑名单不可用时退化为客户端丢弃 Token
	}
	if err := s.store.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Warn("写入 Token 黑名单失败", zap.Error(err))
	}
	return nil
}

func (s *authService) GetCurrentUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role.String(),
	}, nil
}

// generateOTP 生成 6 位数字验证码（100000-999999）
func generateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 100000, nil
}

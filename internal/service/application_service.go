package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tjmanoj/gce-placify/internal/dto"
	"github.com/tjmanoj/gce-placify/internal/model"
	"github.com/tjmanoj/gce-placify/internal/repository"
)

var (
	ErrAlreadyApplied        = errors.New("已申请过该职位")
	ErrNotApplied            = errors.New("未申请该职位")
	ErrApplicationNotFound   = errors.New("申请记录不存在")
	ErrNoPendingApplications = errors.New("该职位没有待处理的申请")
)

// ApplicationService 职位申请业务接口
type ApplicationService interface {
	// Apply 学生申请职位，重复申请由唯一约束拦截
	Apply(ctx context.Context, jobID, studentID uint) error
	// Approve 批准单个申请
	Approve(ctx context.Context, jobID, studentID uint) error
	// ApproveAll 批量批准职位下全部待处理申请
	ApproveAll(ctx context.Context, jobID uint) (*dto.ApproveAllResponse, error)
	// Reject 拒绝申请（删除记录，学生可重新申请）
	Reject(ctx context.Context, jobID, studentID uint) error
	// Revoke 学生撤回自己的申请
	Revoke(ctx context.Context, jobID, studentID uint) error
	// Status 查询学生是否已申请该职位
	Status(ctx context.Context, jobID, studentID uint) (*dto.ApplicationStatusResponse, error)
	// Eligibility 判定学生是否满足职位的全部资格门槛
	Eligibility(ctx context.Context, jobID, studentID uint) (*dto.EligibilityResponse, error)
	ListPending(ctx context.Context, jobID uint) (*dto.ApplicationListResponse, error)
	ListApproved(ctx context.Context, jobID uint) (*dto.ApplicationListResponse, error)
}

type applicationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewApplicationService(repo *repository.Repository, logger *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, logger: logger}
}

func (s *applicationService) Apply(ctx context.Context, jobID, studentID uint) error {
	if _, err := s.repo.Job.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.Uint("job_id", jobID), zap.Error(err))
		return err
	}

	app := &model.JobApplication{
		JobID:     jobID,
		StudentID: studentID,
		Status:    model.ApplicationPending,
	}
	if err := s.repo.Application.Create(ctx, app); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyApplied
		}
		s.logger.Error("创建申请失败",
			zap.Uint("job_id", jobID), zap.Uint("student_id", studentID), zap.Error(err))
		return err
	}

	s.logger.Info("申请提交成功", zap.Uint("job_id", jobID), zap.Uint("student_id", studentID))
	return nil
}

func (s *applicationService) Approve(ctx context.Context, jobID, studentID uint) error {
	affected, err := s.repo.Application.Approve(ctx, jobID, studentID)
	if err != nil {
		s.logger.Error("批准申请失败",
			zap.Uint("job_id", jobID), zap.Uint("student_id", studentID), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (s *applicationService) ApproveAll(ctx context.Context, jobID uint) (*dto.ApproveAllResponse, error) {
	if _, err := s.repo.Job.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.Uint("job_id", jobID), zap.Error(err))
		return nil, err
	}

	apps, err := s.repo.Application.ApproveAllPending(ctx, jobID)
	if err != nil {
		s.logger.Error("批量批准失败", zap.Uint("job_id", jobID), zap.Error(err))
		return nil, err
	}
	if len(apps) == 0 {
		return nil, ErrNoPendingApplications
	}

	s.logger.Info("批量批准完成", zap.Uint("job_id", jobID), zap.Int("count", len(apps)))
	return &dto.ApproveAllResponse{ApprovedApplications: apps}, nil
}

func (s *applicationService) Reject(ctx context.Context, jobID, studentID uint) error {
	affected, err := s.repo.Application.Delete(ctx, jobID, studentID)
	if err != nil {
		s.logger.Error("拒绝申请失败",
			zap.Uint("job_id", jobID), zap.Uint("student_id", studentID), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (s *applicationService) Revoke(ctx context.Context, jobID, studentID uint) error {
	affected, err := s.repo.Application.Delete(ctx, jobID, studentID)
	if err != nil {
		s.logger.Error("撤回申请失败",
			zap.Uint("job_id", jobID), zap.Uint("student_id", studentID), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrNotApplied
	}
	return nil
}

func (s *applicationService) Status(ctx context.Context, jobID, studentID uint) (*dto.ApplicationStatusResponse, error) {
	applied, err := s.repo.Application.Exists(ctx, jobID, studentID)
	if err != nil {
		s.logger.Error("查询申请状态失败",
			zap.Uint("job_id", jobID), zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return &dto.ApplicationStatusResponse{Applied: applied}, nil
}

func (s *applicationService) Eligibility(ctx context.Context, jobID, studentID uint) (*dto.EligibilityResponse, error) {
	job, err := s.repo.Job.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.Uint("job_id", jobID), zap.Error(err))
		return nil, err
	}

	student, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询学生失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}

	return &dto.EligibilityResponse{Eligible: isEligible(job, student)}, nil
}

func (s *applicationService) ListPending(ctx context.Context, jobID uint) (*dto.ApplicationListResponse, error) {
	return s.listByStatus(ctx, jobID, model.ApplicationPending)
}

func (s *applicationService) ListApproved(ctx context.Context, jobID uint) (*dto.ApplicationListResponse, error) {
	return s.listByStatus(ctx, jobID, model.ApplicationApproved)
}

func (s *applicationService) listByStatus(ctx context.Context, jobID uint, status string) (*dto.ApplicationListResponse, error) {
	if _, err := s.repo.Job.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.Uint("job_id", jobID), zap.Error(err))
		return nil, err
	}

	rows, err := s.repo.Application.ListByJobStatus(ctx, jobID, status)
	if err != nil {
		s.logger.Error("查询申请列表失败",
			zap.Uint("job_id", jobID), zap.String("status", status), zap.Error(err))
		return nil, err
	}

	apps := make([]dto.ApplicationWithStudent, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, dto.ApplicationWithStudent{
			ApplicationID:     row.ApplicationID,
			JobID:             row.JobID,
			StudentID:         row.StudentID,
			Status:            row.Status,
			AppliedAt:         row.AppliedAt.Format(time.RFC3339),
			StudentName:       row.StudentName,
			StudentEmail:      row.StudentEmail,
			StudentRollNumber: row.StudentRollNumber,
		})
	}
	return &dto.ApplicationListResponse{Applications: apps}, nil
}

// isEligible 资格判定：五项门槛全部满足才算合格，边界相等视为满足
func isEligible(job *model.Job, student *model.User) bool {
	if student.CGPA < job.MinCGPA {
		return false
	}
	if student.HistoryOfArrear > job.MaxHistoryOfArrear {
		return false
	}
	if student.StandingArrear > job.MaxStandingArrear {
		return false
	}
	if !slices.Contains(job.AllowedGraduationYears, int64(student.GraduationYear)) {
		return false
	}
	return slices.Contains(job.AllowedDepartments, student.Department)
}

package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tjmanoj/gce-placify/internal/dto"
	"github.com/tjmanoj/gce-placify/internal/model"
	"github.com/tjmanoj/gce-placify/internal/repository"
)

var ErrJobNotFound = errors.New("职位不存在")

// 职位列表每页条数
const jobPageSize = 5

// 职位字段缺省值，创建时未提供的字段按此补齐
const (
	defaultOrganisationTitle   = "Unknown Organization"
	defaultOrganisationLogoURL = "https://via.placeholder.com/150"
	defaultJobTitle            = "Software Engineer"
	defaultLocations           = "Remote"
	defaultMinCTC              = 300000
	defaultMaxCTC              = 1200000
	defaultPositions           = 1
	defaultJobDescription      = "No description provided."
	defaultEligibility         = "Open to all applicants."
	defaultApplyBy             = "2025-12-31"
)

// JobService 职位业务接口
type JobService interface {
	// Create 创建职位：缺省字段补齐，job_state 一律置为 OPEN，
	// 创建成功后同步向全体学生推送新职位通知（失败仅记日志）
	Create(ctx context.Context, req *dto.JobRequest) (*model.Job, error)
	GetByID(ctx context.Context, id uint) (*model.Job, error)
	// List 分页列出在招职位，按 id 倒序
	List(ctx context.Context, page int) (*dto.JobListResponse, error)
	Update(ctx context.Context, id uint, req *dto.JobRequest) (*model.Job, error)
	Delete(ctx context.Context, id uint) error
}

type jobService struct {
	repo         *repository.Repository
	notification NotificationService
	logger       *zap.Logger
}

func NewJobService(repo *repository.Repository, notification NotificationService, logger *zap.Logger) JobService {
	return &jobService{repo: repo, notification: notification, logger: logger}
}

func (s *jobService) Create(ctx context.Context, req *dto.JobRequest) (*model.Job, error) {
	job := buildJob(req)
	if err := s.repo.Job.Create(ctx, job); err != nil {
		s.logger.Error("创建职位失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("职位创建成功",
		zap.Uint("job_id", job.ID),
		zap.String("title", job.JobTitle),
		zap.String("org", job.OrganisationTitle))

	// 通知失败不回滚职位创建
	s.notification.JobPosted(ctx, job)

	return job, nil
}

func (s *jobService) GetByID(ctx context.Context, id uint) (*model.Job, error) {
	job, err := s.repo.Job.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return job, nil
}

func (s *jobService) List(ctx context.Context, page int) (*dto.JobListResponse, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * jobPageSize

	jobs, total, err := s.repo.Job.ListActive(ctx, offset, jobPageSize)
	if err != nil {
		s.logger.Error("查询职位列表失败", zap.Error(err))
		return nil, err
	}

	totalPages := int((total + jobPageSize - 1) / jobPageSize)
	if jobs == nil {
		jobs = []model.Job{}
	}

	return &dto.JobListResponse{
		Jobs:        jobs,
		CurrentPage: page,
		TotalPages:  totalPages,
	}, nil
}

func (s *jobService) Update(ctx context.Context, id uint, req *dto.JobRequest) (*model.Job, error) {
	job, err := s.repo.Job.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	applyJobRequest(job, req)

	if err := s.repo.Job.Update(ctx, job); err != nil {
		s.logger.Error("更新职位失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.Job.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除职位失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	s.logger.Info("职位已删除", zap.Uint("id", id))
	return nil
}

// buildJob 由创建请求构造职位实体并补齐缺省值
func buildJob(req *dto.JobRequest) *model.Job {
	job := &model.Job{
		OrganisationTitle:      valueOr(req.OrganisationTitle, defaultOrganisationTitle),
		OrganisationLogoURL:    valueOr(req.OrganisationLogoURL, defaultOrganisationLogoURL),
		JobTitle:               valueOr(req.JobTitle, defaultJobTitle),
		Locations:              valueOr(req.Locations, defaultLocations),
		MinCTC:                 req.MinCTC,
		MaxCTC:                 req.MaxCTC,
		NoOfPositionsAvailable: req.NoOfPositionsAvailable,
		SkillsRequired:         []string(req.SkillsRequired),
		JobDescription:         valueOr(req.JobDescription, defaultJobDescription),
		EligibilityCriteria:    valueOr(req.EligibilityCriteria, defaultEligibility),
		JobState:               model.JobStateOpen, // 创建时无视请求中的状态
		JobType:                valueOr(req.JobType, model.JobTypeFullTime),
		ApplyBy:                valueOr(req.ApplyBy, defaultApplyBy),
		JobActiveStatus:        true,
		MinCGPA:                req.MinCGPA,
		MaxHistoryOfArrear:     req.MaxHistoryOfArrear,
		MaxStandingArrear:      req.MaxStandingArrear,
		AllowedGraduationYears: []int64(req.AllowedGraduationYears),
		AllowedDepartments:     []string(req.AllowedDepartments),
	}

	if job.MinCTC == 0 {
		job.MinCTC = defaultMinCTC
	}
	if job.MaxCTC == 0 {
		job.MaxCTC = defaultMaxCTC
	}
	if job.NoOfPositionsAvailable == 0 {
		job.NoOfPositionsAvailable = defaultPositions
	}
	if len(job.SkillsRequired) == 0 {
		job.SkillsRequired = []string{"General Programming"}
	}
	if req.JobActiveStatus != nil {
		job.JobActiveStatus = *req.JobActiveStatus
	}
	if job.AllowedGraduationYears == nil {
		job.AllowedGraduationYears = []int64{}
	}
	if job.AllowedDepartments == nil {
		job.AllowedDepartments = []string{}
	}
	return job
}

// applyJobRequest 将编辑请求中的非零字段覆盖到已有职位
func applyJobRequest(job *model.Job, req *dto.JobRequest) {
	if req.OrganisationTitle != "" {
		job.OrganisationTitle = req.OrganisationTitle
	}
	if req.OrganisationLogoURL != "" {
		job.OrganisationLogoURL = req.OrganisationLogoURL
	}
	if req.JobTitle != "" {
		job.JobTitle = req.JobTitle
	}
	if req.Locations != "" {
		job.Locations = req.Locations
	}
	if req.MinCTC != 0 {
		job.MinCTC = req.MinCTC
	}
	if req.MaxCTC != 0 {
		job.MaxCTC = req.MaxCTC
	}
	if req.NoOfPositionsAvailable != 0 {
		job.NoOfPositionsAvailable = req.NoOfPositionsAvailable
	}
	if req.SkillsRequired != nil {
		job.SkillsRequired = []string(req.SkillsRequired)
	}
	if req.JobDescription != "" {
		job.JobDescription = req.JobDescription
	}
	if req.EligibilityCriteria != "" {
		job.EligibilityCriteria = req.EligibilityCriteria
	}
	if req.JobState != "" {
		job.JobState = req.JobState
	}
	if req.JobType != "" {
		job.JobType = req.JobType
	}
	if req.ApplyBy != "" {
		job.ApplyBy = req.ApplyBy
	}
	if req.JobActiveStatus != nil {
		job.JobActiveStatus = *req.JobActiveStatus
	}
	if req.MinCGPA != 0 {
		job.MinCGPA = req.MinCGPA
	}
	if req.MaxHistoryOfArrear != 0 {
		job.MaxHistoryOfArrear = req.MaxHistoryOfArrear
	}
	if req.MaxStandingArrear != 0 {
		job.MaxStandingArrear = req.MaxStandingArrear
	}
	if req.AllowedGraduationYears != nil {
		job.AllowedGraduationYears = []int64(req.AllowedGraduationYears)
	}
	if req.AllowedDepartments != nil {
		job.AllowedDepartments = []string(req.AllowedDepartments)
	}
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tjmanoj/gce-placify/internal/model"
)

// JobRepository 职位数据访问接口
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id uint) (*model.Job, error)
	// ListActive 仅列出 job_active_status=true 的职位，按 id 倒序分页
	ListActive(ctx context.Context, offset, limit int) ([]model.Job, int64, error)
	Update(ctx context.Context, job *model.Job) error
	// Delete 硬删除，返回影响行数
	Delete(ctx context.Context, id uint) (int64, error)
}

// jobRepo JobRepository 的 GORM 实现
type jobRepo struct {
	db *gorm.DB
}

// NewJobRepo 创建 JobRepository 实例
func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id uint) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) ListActive(ctx context.Context, offset, limit int) ([]model.Job, int64, error) {
	var jobs []model.Job
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Job{}).Where("job_active_status = ?", true)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("id DESC").
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepo) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Job{}, id)
	return res.RowsAffected, res.Error
}

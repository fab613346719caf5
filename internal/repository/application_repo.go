package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tjmanoj/gce-placify/internal/model"
)

// ApplicationStudentRow 申请记录联查学生身份字段
type ApplicationStudentRow struct {
	ApplicationID     uint      `gorm:"column:application_id"`
	JobID             uint      `gorm:"column:job_id"`
	StudentID         uint      `gorm:"column:student_id"`
	Status            string    `gorm:"column:status"`
	AppliedAt         time.Time `gorm:"column:applied_at"`
	StudentName       string    `gorm:"column:student_name"`
	StudentEmail      string    `gorm:"column:student_email"`
	StudentRollNumber string    `gorm:"column:student_roll_number"`
}

// ApplicantExportRow 申请表导出联查学生档案字段（任意状态）
type ApplicantExportRow struct {
	RollNumber     string    `gorm:"column:roll_number"`
	Name           string    `gorm:"column:name"`
	Email          string    `gorm:"column:email"`
	PhoneNumber    string    `gorm:"column:phone_number"`
	CGPA           float64   `gorm:"column:cgpa"`
	GraduationYear int       `gorm:"column:graduation_year"`
	ResumeURL      string    `gorm:"column:resume_url"`
	Skills         string    `gorm:"column:skills"`
	Status         string    `gorm:"column:status"`
	AppliedAt      time.Time `gorm:"column:applied_at"`
}

// ApplicationRepository 职位申请数据访问接口
type ApplicationRepository interface {
	// Create 依赖 (job_id, student_id) 唯一约束，
	// 重复申请返回 gorm.ErrDuplicatedKey（TranslateError）
	Create(ctx context.Context, app *model.JobApplication) error
	Exists(ctx context.Context, jobID, studentID uint) (bool, error)
	// Approve 将指定申请置为 approved，返回影响行数（0 即记录不存在）
	Approve(ctx context.Context, jobID, studentID uint) (int64, error)
	// ApproveAllPending 单条 UPDATE 批量批准并返回被更新的行
	ApproveAllPending(ctx context.Context, jobID uint) ([]model.JobApplication, error)
	// Delete 删除申请（拒绝/撤回共用），返回影响行数
	Delete(ctx context.Context, jobID, studentID uint) (int64, error)
	// ListByJobStatus 按状态联查学生身份字段
	ListByJobStatus(ctx context.Context, jobID uint, status string) ([]ApplicationStudentRow, error)
	// ListForExport 任意状态联查学生档案（导出用）
	ListForExport(ctx context.Context, jobID uint) ([]ApplicantExportRow, error)
}

// applicationRepo ApplicationRepository 的 GORM 实现
type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo 创建 ApplicationRepository 实例
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.JobApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, studentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.JobApplication{}).
		Where("job_id = ? AND student_id = ?", jobID, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *applicationRepo) Approve(ctx context.Context, jobID, studentID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.JobApplication{}).
		Where("job_id = ? AND student_id = ?", jobID, studentID).
		Update("status", model.ApplicationApproved)
	return res.RowsAffected, res.Error
}

func (r *applicationRepo) ApproveAllPending(ctx context.Context, jobID uint) ([]model.JobApplication, error) {
	var apps []model.JobApplication
	res := r.db.WithContext(ctx).
		Model(&apps).
		Clauses(clause.Returning{}).
		Where("job_id = ? AND status = ?", jobID, model.ApplicationPending).
		Update("status", model.ApplicationApproved)
	if res.Error != nil {
		return nil, res.Error
	}
	return apps, nil
}

func (r *applicationRepo) Delete(ctx context.Context, jobID, studentID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("job_id = ? AND student_id = ?", jobID, studentID).
		Delete(&model.JobApplication{})
	return res.RowsAffected, res.Error
}

func (r *applicationRepo) ListByJobStatus(ctx context.Context, jobID uint, status string) ([]ApplicationStudentRow, error) {
	var rows []ApplicationStudentRow
	err := r.db.WithContext(ctx).
		Model(&model.JobApplication{}).
		Select(`job_applications.id AS application_id,
			job_applications.job_id,
			job_applications.student_id,
			job_applications.status,
			job_applications.applied_at,
			users.name AS student_name,
			users.email AS student_email,
			users.roll_number AS student_roll_number`).
		Joins("JOIN users ON job_applications.student_id = users.id").
		Where("job_applications.job_id = ? AND job_applications.status = ?", jobID, status).
		Order("job_applications.applied_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *applicationRepo) ListForExport(ctx context.Context, jobID uint) ([]ApplicantExportRow, error) {
	var rows []ApplicantExportRow
	err := r.db.WithContext(ctx).
		Model(&model.JobApplication{}).
		Select(`users.roll_number,
			users.name,
			users.email,
			users.phone_number,
			users.cgpa,
			users.graduation_year,
			users.resume_url,
			array_to_string(users.skills, ', ') AS skills,
			job_applications.status,
			job_applications.applied_at`).
		Joins("JOIN users ON job_applications.student_id = users.id").
		Where("job_applications.job_id = ?", jobID).
		Order("job_applications.applied_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

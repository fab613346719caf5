package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tjmanoj/gce-placify/internal/model"
)

// RosterRow 花名册导入的单行更新内容，按 roll_number 定位已有用户。
// 数值字段为指针：nil 表示单元格为空，对应列保持原值
type RosterRow struct {
	RollNumber      string
	Name            string
	Email           string
	PhoneNumber     string
	Department      string
	GraduationYear  *int
	CGPA            *float64
	HistoryOfArrear *int
	StandingArrear  *int
}

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// PromoteToAdmin 条件更新：仅当目标当前不是 admin 时生效，返回影响行数
	PromoteToAdmin(ctx context.Context, id uint) (int64, error)
	// DemoteToStudent 条件更新：仅当目标当前是 admin 时生效，返回影响行数
	DemoteToStudent(ctx context.Context, id uint) (int64, error)
	// UpdateStudentProfile 仅更新 role=student 的行，返回影响行数
	UpdateStudentProfile(ctx context.Context, user *model.User) (int64, error)
	// UpdateByRollNumber 花名册导入：按学号更新已有用户，返回影响行数
	UpdateByRollNumber(ctx context.Context, row *RosterRow) (int64, error)
	// ListStudentEmails 所有学生邮箱（职位通知扇出用）
	ListStudentEmails(ctx context.Context) ([]string, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) PromoteToAdmin(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND role <> ?", id, model.RoleAdmin).
		Update("role", model.RoleAdmin)
	return res.RowsAffected, res.Error
}

func (r *userRepo) DemoteToStudent(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND role = ?", id, model.RoleAdmin).
		Update("role", model.RoleStudent)
	return res.RowsAffected, res.Error
}

func (r *userRepo) UpdateStudentProfile(ctx context.Context, user *model.User) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND role = ?", user.ID, model.RoleStudent).
		Updates(map[string]interface{}{
			"name":              user.Name,
			"email":             user.Email,
			"phone_number":      user.PhoneNumber,
			"roll_number":       user.RollNumber,
			"department":        user.Department,
			"graduation_year":   user.GraduationYear,
			"cgpa":              user.CGPA,
			"history_of_arrear": user.HistoryOfArrear,
			"standing_arrear":   user.StandingArrear,
			"resume_url":        user.ResumeURL,
			"skills":            user.Skills,
		})
	return res.RowsAffected, res.Error
}

func (r *userRepo) UpdateByRollNumber(ctx context.Context, row *RosterRow) (int64, error) {
	// 只写入填写了的列，空单元格不覆盖已有档案
	updates := map[string]interface{}{}
	if row.Name != "" {
		updates["name"] = row.Name
	}
	if row.Email != "" {
		updates["email"] = row.Email
	}
	if row.PhoneNumber != "" {
		updates["phone_number"] = row.PhoneNumber
	}
	if row.Department != "" {
		updates["department"] = row.Department
	}
	if row.GraduationYear != nil {
		updates["graduation_year"] = *row.GraduationYear
	}
	if row.CGPA != nil {
		updates["cgpa"] = *row.CGPA
	}
	if row.HistoryOfArrear != nil {
		updates["history_of_arrear"] = *row.HistoryOfArrear
	}
	if row.StandingArrear != nil {
		updates["standing_arrear"] = *row.StandingArrear
	}
	if len(updates) == 0 {
		// 整行只有学号：按“已匹配”计数，但不发起空 UPDATE
		var count int64
		err := r.db.WithContext(ctx).
			Model(&model.User{}).
			Where("roll_number = ?", row.RollNumber).
			Count(&count).Error
		return count, err
	}

	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("roll_number = ?", row.RollNumber).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *userRepo) ListStudentEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("role = ?", model.RoleStudent).
		Pluck("email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

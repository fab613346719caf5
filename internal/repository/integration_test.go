//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tjmanoj/gce-placify/internal/model"
	"github.com/tjmanoj/gce-placify/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=placify password=placify_password dbname=placify_test sslmode=disable TimeZone=Asia/Kolkata"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.User{},
		&model.Job{},
		&model.JobApplication{},
		&model.PushSubscription{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (student *model.User, job *model.Job, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	nano := time.Now().UnixNano()

	student = &model.User{
		Name:           "测试学生",
		Email:          fmt.Sprintf("stu%d@gcetly.ac.in", nano),
		PasswordHash:   "$2a$10$placeholder",
		Role:           model.RoleStudent,
		RollNumber:     fmt.Sprintf("ROLL%d", nano),
		Department:     "CSE",
		GraduationYear: 2026,
		CGPA:           8.2,
	}
	if err := testDB.WithContext(ctx).Create(student).Error; err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	job = &model.Job{
		OrganisationTitle:      "测试公司",
		JobTitle:               fmt.Sprintf("Backend Engineer %d", nano),
		ApplyBy:                "2026-12-31",
		JobActiveStatus:        true,
		AllowedGraduationYears: []int64{2026},
		AllowedDepartments:     []string{"CSE"},
	}
	if err := testDB.WithContext(ctx).Create(job).Error; err != nil {
		t.Fatalf("创建职位失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("job_id = ?", job.ID).Delete(&model.JobApplication{})
		testDB.Where("id = ?", job.ID).Delete(&model.Job{})
		testDB.Where("id = ?", student.ID).Delete(&model.User{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: Application Unique Constraint
// ═══════════════════════════════════════════════════════════

func TestApplicationRepo_DuplicateApply(t *testing.T) {
	student, job, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	app := &model.JobApplication{JobID: job.ID, StudentID: student.ID, Status: model.ApplicationPending}
	if err := repo.Application.Create(ctx, app); err != nil {
		t.Fatalf("首次申请失败: %v", err)
	}

	dup := &model.JobApplication{JobID: job.ID, StudentID: student.ID, Status: model.ApplicationPending}
	err := repo.Application.Create(ctx, dup)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("期望 gorm.ErrDuplicatedKey，实际=%v", err)
	}
}

func TestApplicationRepo_DeleteThenReapply(t *testing.T) {
	student, job, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	app := &model.JobApplication{JobID: job.ID, StudentID: student.ID, Status: model.ApplicationPending}
	if err := repo.Application.Create(ctx, app); err != nil {
		t.Fatalf("首次申请失败: %v", err)
	}

	affected, err := repo.Application.Delete(ctx, job.ID, student.ID)
	if err != nil {
		t.Fatalf("删除申请失败: %v", err)
	}
	if affected != 1 {
		t.Errorf("期望删除 1 行，实际=%d", affected)
	}

	// 删除后可重新申请
	again := &model.JobApplication{JobID: job.ID, StudentID: student.ID, Status: model.ApplicationPending}
	if err := repo.Application.Create(ctx, again); err != nil {
		t.Errorf("删除后重新申请失败: %v", err)
	}
}

func TestApplicationRepo_ApproveAllPending(t *testing.T) {
	student, job, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	nano := time.Now().UnixNano()

	// 第二个学生：一个 pending，一个已 approved
	other := &model.User{
		Name:         "另一学生",
		Email:        fmt.Sprintf("other%d@gcetly.ac.in", nano),
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleStudent,
		RollNumber:   fmt.Sprintf("OTH%d", nano),
	}
	if err := testDB.WithContext(ctx).Create(other).Error; err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}
	defer testDB.Where("id = ?", other.ID).Delete(&model.User{})

	if err := repo.Application.Create(ctx, &model.JobApplication{JobID: job.ID, StudentID: student.ID, Status: model.ApplicationPending}); err != nil {
		t.Fatalf("创建申请失败: %v", err)
	}
	if err := repo.Application.Create(ctx, &model.JobApplication{JobID: job.ID, StudentID: other.ID, Status: model.ApplicationApproved}); err != nil {
		t.Fatalf("创建申请失败: %v", err)
	}

	updated, err := repo.Application.ApproveAllPending(ctx, job.ID)
	if err != nil {
		t.Fatalf("ApproveAllPending 失败: %v", err)
	}
	if len(updated) != 1 {
		t.Fatalf("期望批准 1 条，实际=%d", len(updated))
	}
	if updated[0].StudentID != student.ID {
		t.Errorf("期望批准学生 %d 的申请，实际=%d", student.ID, updated[0].StudentID)
	}
	if updated[0].Status != model.ApplicationApproved {
		t.Errorf("期望状态 approved，实际=%s", updated[0].Status)
	}
}

func TestApplicationRepo_ListByJobStatus_JoinsStudent(t *testing.T) {
	student, job, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if err := repo.Application.Create(ctx, &model.JobApplication{JobID: job.ID, StudentID: student.ID, Status: model.ApplicationPending}); err != nil {
		t.Fatalf("创建申请失败: %v", err)
	}

	rows, err := repo.Application.ListByJobStatus(ctx, job.ID, model.ApplicationPending)
	if err != nil {
		t.Fatalf("ListByJobStatus 失败: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("期望 1 行，实际=%d", len(rows))
	}
	if rows[0].StudentRollNumber != student.RollNumber {
		t.Errorf("期望学号 %s，实际=%s", student.RollNumber, rows[0].StudentRollNumber)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Conditional Role Updates
// ═══════════════════════════════════════════════════════════

func TestUserRepo_PromoteDemote_Conditional(t *testing.T) {
	student, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	affected, err := repo.User.PromoteToAdmin(ctx, student.ID)
	if err != nil {
		t.Fatalf("提升失败: %v", err)
	}
	if affected != 1 {
		t.Errorf("期望影响 1 行，实际=%d", affected)
	}

	// 已是 admin，再次提升不生效
	affected, err = repo.User.PromoteToAdmin(ctx, student.ID)
	if err != nil {
		t.Fatalf("重复提升出错: %v", err)
	}
	if affected != 0 {
		t.Errorf("期望影响 0 行，实际=%d", affected)
	}

	affected, err = repo.User.DemoteToStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("降级失败: %v", err)
	}
	if affected != 1 {
		t.Errorf("期望影响 1 行，实际=%d", affected)
	}

	// 已是 student，再次降级不生效
	affected, err = repo.User.DemoteToStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("重复降级出错: %v", err)
	}
	if affected != 0 {
		t.Errorf("期望影响 0 行，实际=%d", affected)
	}
}

func TestUserRepo_UpdateByRollNumber_UnknownSkipped(t *testing.T) {
	student, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	newCGPA := 9.1

	// 已有学号：更新生效
	affected, err := repo.User.UpdateByRollNumber(ctx, &repository.RosterRow{
		RollNumber: student.RollNumber,
		CGPA:       &newCGPA,
		Department: "ECE",
	})
	if err != nil {
		t.Fatalf("按学号更新失败: %v", err)
	}
	if affected != 1 {
		t.Errorf("期望影响 1 行，实际=%d", affected)
	}

	found, err := repo.User.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("查询学生失败: %v", err)
	}
	if found.CGPA != 9.1 {
		t.Errorf("期望 CGPA 9.1，实际=%v", found.CGPA)
	}

	// 未知学号：静默跳过，不创建账号
	lowCGPA := 5.0
	affected, err = repo.User.UpdateByRollNumber(ctx, &repository.RosterRow{
		RollNumber: "NO-SUCH-ROLL",
		CGPA:       &lowCGPA,
	})
	if err != nil {
		t.Fatalf("未知学号更新出错: %v", err)
	}
	if affected != 0 {
		t.Errorf("期望影响 0 行，实际=%d", affected)
	}

	// 空白单元格不覆盖：只带学号的行保持档案原值
	affected, err = repo.User.UpdateByRollNumber(ctx, &repository.RosterRow{
		RollNumber: student.RollNumber,
	})
	if err != nil {
		t.Fatalf("空白行更新出错: %v", err)
	}
	if affected != 1 {
		t.Errorf("期望匹配 1 行，实际=%d", affected)
	}
	found, err = repo.User.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("查询学生失败: %v", err)
	}
	if found.CGPA != 9.1 || found.Department != "ECE" {
		t.Errorf("空白行不应改动档案: cgpa=%v dept=%s", found.CGPA, found.Department)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Job Listing
// ═══════════════════════════════════════════════════════════

func TestJobRepo_ListActive_ExcludesInactive(t *testing.T) {
	_, job, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	inactive := &model.Job{
		OrganisationTitle: "测试公司",
		JobTitle:          "Inactive Role",
		ApplyBy:           "2026-12-31",
		JobActiveStatus:   false,
	}
	if err := testDB.WithContext(ctx).Create(inactive).Error; err != nil {
		t.Fatalf("创建职位失败: %v", err)
	}
	defer testDB.Where("id = ?", inactive.ID).Delete(&model.Job{})

	jobs, _, err := repo.Job.ListActive(ctx, 0, 100)
	if err != nil {
		t.Fatalf("ListActive 失败: %v", err)
	}
	for _, j := range jobs {
		if j.ID == inactive.ID {
			t.Error("下架职位不应出现在列表中")
		}
	}
	foundActive := false
	for _, j := range jobs {
		if j.ID == job.ID {
			foundActive = true
		}
	}
	if !foundActive {
		t.Error("在招职位应出现在列表中")
	}
}

func TestJobRepo_ApplyByRoundTrip(t *testing.T) {
	_, job, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	found, err := repo.Job.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("查询职位失败: %v", err)
	}
	// apply_by 以 YYYY-MM-DD 文本存储，读回不得变成带时间的时间戳
	if found.ApplyBy != "2026-12-31" {
		t.Errorf("期望 apply_by=2026-12-31，实际=%s", found.ApplyBy)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Push Subscription Upsert
// ═══════════════════════════════════════════════════════════

func TestSubscriptionRepo_Upsert_Overwrites(t *testing.T) {
	student, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	defer testDB.Where("user_id = ?", student.ID).Delete(&model.PushSubscription{})

	first := &model.PushSubscription{UserID: student.ID, Subscription: []byte(`{"endpoint":"https://push.example/a"}`)}
	if err := repo.Subscription.Upsert(ctx, first); err != nil {
		t.Fatalf("首次订阅失败: %v", err)
	}

	second := &model.PushSubscription{UserID: student.ID, Subscription: []byte(`{"endpoint":"https://push.example/b"}`)}
	if err := repo.Subscription.Upsert(ctx, second); err != nil {
		t.Fatalf("覆盖订阅失败: %v", err)
	}

	subs, err := repo.Subscription.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll 失败: %v", err)
	}
	count := 0
	for _, s := range subs {
		if s.UserID == student.ID {
			count++
			if string(s.Subscription) != `{"endpoint":"https://push.example/b"}` {
				t.Errorf("期望订阅被覆盖，实际=%s", s.Subscription)
			}
		}
	}
	if count != 1 {
		t.Errorf("期望每用户一条订阅，实际=%d", count)
	}
}

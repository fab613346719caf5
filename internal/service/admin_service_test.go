package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/tjmanoj/gce-placify/internal/model"
)

func setupTestAdminService() (AdminService, *mockUserRepo) {
	repo, users, _, _, _ := newMockRepository()
	return NewAdminService(repo, zap.NewNop()), users
}

func TestPromoteToAdmin_Success(t *testing.T) {
	svc, users := setupTestAdminService()
	user := createTestStudent(users, "stu@gcetly.ac.in", "password123")

	if err := svc.PromoteToAdmin(context.Background(), user.ID); err != nil {
		t.Fatalf("PromoteToAdmin 应成功，但返回错误: %v", err)
	}
	if users.users[user.ID].Role != model.RoleAdmin {
		t.Errorf("期望 Role=admin，实际=%s", users.users[user.ID].Role)
	}
}

func TestPromoteToAdmin_AlreadyAdmin(t *testing.T) {
	svc, users := setupTestAdminService()
	user := createTestStudent(users, "adm@gcetly.ac.in", "password123")
	user.Role = model.RoleAdmin

	err := svc.PromoteToAdmin(context.Background(), user.ID)
	if !errors.Is(err, ErrAlreadyAdmin) {
		t.Errorf("期望 ErrAlreadyAdmin，实际=%v", err)
	}
}

func TestPromoteToAdmin_UserNotFound(t *testing.T) {
	svc, _ := setupTestAdminService()

	err := svc.PromoteToAdmin(context.Background(), 999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际=%v", err)
	}
}

func TestDemoteToStudent_Success(t *testing.T) {
	svc, users := setupTestAdminService()
	user := createTestStudent(users, "adm@gcetly.ac.in", "password123")
	user.Role = model.RoleAdmin

	if err := svc.DemoteToStudent(context.Background(), user.ID); err != nil {
		t.Fatalf("DemoteToStudent 应成功，但返回错误: %v", err)
	}
	if users.users[user.ID].Role != model.RoleStudent {
		t.Errorf("期望 Role=student，实际=%s", users.users[user.ID].Role)
	}
}

func TestDemoteToStudent_NotAdmin(t *testing.T) {
	svc, users := setupTestAdminService()
	user := createTestStudent(users, "stu@gcetly.ac.in", "password123")

	err := svc.DemoteToStudent(context.Background(), user.ID)
	if !errors.Is(err, ErrNotAdmin) {
		t.Errorf("期望 ErrNotAdmin，实际=%v", err)
	}
}

func TestDemoteToStudent_UserNotFound(t *testing.T) {
	svc, _ := setupTestAdminService()

	err := svc.DemoteToStudent(context.Background(), 999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际=%v", err)
	}
}

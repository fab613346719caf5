package model

import (
	"time"

	"github.com/lib/pq"
)

// User 用户表 — 对应 users
// 学生档案字段（roll_number、cgpa 等）仅对 student 角色有业务含义
type User struct {
	ID              uint           `gorm:"primaryKey"                                  json:"id"`
	Name            string         `gorm:"type:varchar(100);not null"                  json:"name"`
	Email           string         `gorm:"type:varchar(255);not null;uniqueIndex"      json:"email"`
	PasswordHash    string         `gorm:"type:varchar(255);not null"                  json:"-"`
	Role            Role           `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	PhoneNumber     string         `gorm:"type:varchar(20);not null;default:''"        json:"phone_number"`
	RollNumber      string         `gorm:"type:varchar(30);not null;default:'';index"  json:"roll_number"`
	Department      string         `gorm:"type:varchar(50);not null;default:''"        json:"department"`
	GraduationYear  int            `gorm:"not null;default:0"                          json:"graduation_year"`
	CGPA            float64        `gorm:"type:numeric(4,2);not null;default:0"        json:"cgpa"`
	HistoryOfArrear int            `gorm:"not null;default:0"                          json:"history_of_arrear"`
	StandingArrear  int            `gorm:"not null;default:0"                          json:"standing_arrear"`
	ResumeURL       string         `gorm:"type:text;not null;default:''"               json:"resume_url"`
	Skills          pq.StringArray `gorm:"type:text[];not null;default:'{}'"           json:"skills"`
	CreatedAt       time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// PushSubscription 推送订阅表 — 对应 user_subscriptions（与 users 1:1）
type PushSubscription struct {
	UserID       uint      `gorm:"primaryKey"                          json:"user_id"`
	Subscription []byte    `gorm:"type:jsonb;not null"                 json:"subscription"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"updated_at"`
}

// TableName 指定表名
func (PushSubscription) TableName() string { return "user_subscriptions" }

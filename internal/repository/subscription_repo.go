package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tjmanoj/gce-placify/internal/model"
)

// SubscriptionRepository 推送订阅数据访问接口
type SubscriptionRepository interface {
	// Upsert 每用户一条订阅，重复订阅时覆盖
	Upsert(ctx context.Context, sub *model.PushSubscription) error
	ListAll(ctx context.Context) ([]model.PushSubscription, error)
}

// subscriptionRepo SubscriptionRepository 的 GORM 实现
type subscriptionRepo struct {
	db *gorm.DB
}

// NewSubscriptionRepo 创建 SubscriptionRepository 实例
func NewSubscriptionRepo(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) Upsert(ctx context.Context, sub *model.PushSubscription) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"subscription", "updated_at"}),
		}).
		Create(sub).Error
}

func (r *subscriptionRepo) ListAll(ctx context.Context) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := r.db.WithContext(ctx).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

package webpush

import (
	"encoding/json"
	"fmt"

	wp "github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"github.com/tjmanoj/gce-placify/config"
)

// Sender Web Push (VAPID) 推送发送器
type Sender struct {
	cfg    *config.PushConfig
	logger *zap.Logger
}

// NewSender 创建推送发送器
func NewSender(cfg *config.PushConfig, logger *zap.Logger) *Sender {
	return &Sender{cfg: cfg, logger: logger}
}

// Send 向单个订阅推送 JSON 消息
// subscriptionJSON 为浏览器订阅时上报的原始订阅对象
func (s *Sender) Send(subscriptionJSON []byte, payload []byte) error {
	var sub wp.Subscription
	if err := json.Unmarshal(subscriptionJSON, &sub); err != nil {
		return fmt.Errorf("解析订阅对象失败: %w", err)
	}

	resp, err := wp.SendNotification(payload, &sub, &wp.Options{
		Subscriber:      s.cfg.Subscriber,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("推送服务返回状态码 %d", resp.StatusCode)
	}
	return nil
}

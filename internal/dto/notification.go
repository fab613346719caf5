package dto

import "encoding/json"

// ── 通知模块 DTO ──

// SubscribeRequest 推送订阅请求
// subscription 为浏览器 PushManager 上报的订阅对象，原样存储
type SubscribeRequest struct {
	Subscription json.RawMessage `json:"subscription" binding:"required"`
}

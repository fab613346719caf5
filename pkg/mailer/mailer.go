package mailer

import (
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/tjmanoj/gce-placify/config"
)

// Mailer SMTP 邮件发送器
// 每次 Send 独立建连发送，失败互不影响（通知扇出按收件人逐一调用）
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailer 创建 SMTP 邮件发送器
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// Send 发送一封纯文本邮件
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

package service

import (
	"errors"
	"fmt"
	"html"

	"budget/config"
	"budget/models"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled 邮件服务未启用
var ErrEmailDisabled = errors.New("邮件服务未启用，请配置 BUDGET_EMAIL_ENABLED=true")

// EmailService 邮件服务
type EmailService struct {
	cfg  *config.EmailConfig
	send func(m *gomail.Message) error
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{cfg: cfg}
	s.send = s.dialAndSend
	return s
}

// Enabled 是否已启用
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendGoalReachedEmail 储蓄目标达成通知
func (s *EmailService) SendGoalReachedEmail(toEmail string, goal models.SavingsGoal) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	subject := fmt.Sprintf("【记账助手】储蓄目标「%s」已达成", goal.Name)
	return s.sendEmail(toEmail, subject, s.generateGoalReachedBody(goal))
}

// generateGoalReachedBody 生成目标达成邮件内容，金额在此处保留两位小数
func (s *EmailService) generateGoalReachedBody(goal models.SavingsGoal) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #15803d, #166534); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .amount { font-size: 28px; font-weight: 700; color: #15803d; text-align: center; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🎯 目标达成</h1>
        </div>
        <div class="content">
            <p>恭喜！您的储蓄目标 <strong>%s</strong> 已经达成。</p>
            <p class="amount">%.2f / %.2f</p>
            <p>当前进度 %.0f%%，每月递增 %.2f。继续保持！</p>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
        </div>
    </div>
</body>
</html>
`, html.EscapeString(goal.Name), goal.CurrentAmount, goal.TargetAmount, goal.Progress(), goal.MonthlyIncrement)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

func (s *EmailService) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}

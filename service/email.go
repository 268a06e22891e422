package service

import (
	"fmt"

	"fintrack/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendPasswordResetEmail 发送密码重置邮件
func (s *EmailService) SendPasswordResetEmail(toEmail, username, resetLink string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 email.enabled=true")
	}

	subject := "【理财目标】密码重置"
	body := s.generateResetEmailBody(username, resetLink)

	return s.sendEmail(toEmail, subject, body)
}

// generateResetEmailBody 生成重置邮件内容
func (s *EmailService) generateResetEmailBody(username, resetLink string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #10b981, #059669); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .btn { display: inline-block; background: linear-gradient(135deg, #10b981, #059669); color: white !important; text-decoration: none; padding: 14px 40px; border-radius: 8px; font-weight: 600; margin: 20px 0; }
        .warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; border-radius: 4px; }
        .warning p { margin: 0; color: #856404; font-size: 14px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
        .link { word-break: break-all; color: #059669; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🎯 理财目标</h1>
        </div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！</p>
            <p>我们收到了您的密码重置请求。请点击下方按钮重置您的密码：</p>
            <p style="text-align: center;">
                <a href="%s" class="btn">重置密码</a>
            </p>
            <div class="warning">
                <p>⚠️ 此链接有效期为 <strong>30 分钟</strong>，请尽快完成密码重置。</p>
                <p>⚠️ 如果您没有请求重置密码，请忽略此邮件。</p>
            </div>
            <p>如果按钮无法点击，请复制以下链接到浏览器打开：</p>
            <p class="link">%s</p>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 理财目标 - 您的储蓄目标管理助手</p>
        </div>
    </div>
</body>
</html>
`, username, resetLink, resetLink)
}

// sendEmail 通过 SMTP 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

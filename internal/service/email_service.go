package service

import (
	"fmt"
	"time"

	"musicshare-backend/config"
	"musicshare-backend/internal/util"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// EmailService 负责发送通知邮件
type EmailService struct {
	smtpHost string
	smtpPort int
	username string
	password string
}

// NewEmailService 创建一个新的 EmailService 实例
func NewEmailService() *EmailService {
	return &EmailService{
		smtpHost: config.AppConfig.SMTPHost,
		smtpPort: config.AppConfig.SMTPPort,
		username: config.AppConfig.SMTPUsername,
		password: config.AppConfig.SMTPPassword,
	}
}

// SendWelcomeEmail 注册成功后异步发送欢迎邮件，失败只记录日志不影响注册
func (s *EmailService) SendWelcomeEmail(email, username string) {
	subject := "Welcome to MusicShare"
	body := fmt.Sprintf("Hi %s,<br><br>Your account is ready. Start sharing your music at %s.",
		username, config.AppConfig.FrontendURL)
	s.sendEmailAsync(email, subject, body)
}

func (s *EmailService) sendEmailAsync(to, subject, body string) {
	go func() {
		if err := s.sendEmail(to, subject, body); err != nil {
			util.Logger.Error("异步发送邮件失败", zap.Error(err), zap.String("to", to))
		}
	}()
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	util.Logger.Info("开始发送邮件",
		zap.String("to", to),
		zap.String("subject", subject))

	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second

	return d.DialAndSend(m)
}

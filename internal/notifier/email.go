package notifier

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
	"github.com/devxankit/CRM-SaaS-sub000/internal/logger"
)

// SendActivationEmail gửi email thông báo dự án được kích hoạt cho một thành viên.
// Best-effort: thiếu cấu hình SMTP hoặc gửi lỗi đều chỉ log, không trả lỗi cho caller.
func SendActivationEmail(to, memberName, projectName string, dueDate int64) {
	cfg := global.ServerConfig
	if cfg == nil || cfg.SMTP_Host == "" || to == "" {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTP_From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Project activated: %s", projectName))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nThe project \"%s\" has been activated and assigned to your team. Please check your dashboard for tasks and the delivery schedule.\n",
		memberName, projectName,
	))

	d := gomail.NewDialer(cfg.SMTP_Host, cfg.SMTP_Port, cfg.SMTP_Username, cfg.SMTP_Password)
	if err := d.DialAndSend(m); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("to", to).Error("Failed to send activation email")
	}
}

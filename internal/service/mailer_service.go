package service

import (
	"fmt"

	"artscore_backend/internal/config"
	"artscore_backend/internal/model"
	"artscore_backend/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// MailerService sends fire-and-forget notification mail. Failures are
// logged, never surfaced to the request that triggered them.
type MailerService struct {
	Cfg *config.MailConfig
}

func NewMailerService(cfg *config.MailConfig) *MailerService {
	return &MailerService{Cfg: cfg}
}

func (s *MailerService) send(to, subject, body string) {
	if s.Cfg.Host == "" || to == "" {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.Cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Cfg.Host, s.Cfg.Port, s.Cfg.Username, s.Cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		logger.Log.Error("Failed to send mail", zap.String("to", to), zap.Error(err))
	}
}

// NotifyRegistration mails the new partner and the admin inbox.
func (s *MailerService) NotifyRegistration(user *model.User) {
	go s.send(user.Email, "Welcome to ARTSCore",
		fmt.Sprintf("Hi %s,\n\nyour ARTSCore partner account has been created.\n", user.Name))
	go s.send(s.Cfg.AdminTo, "New partner registration",
		fmt.Sprintf("Partner %s <%s> (%s) registered.\n", user.Name, user.Email, user.Company))
}

// NotifyLeadCreated mails the admin inbox about a new lead.
func (s *MailerService) NotifyLeadCreated(lead *model.Lead, partner *model.User) {
	go s.send(s.Cfg.AdminTo, "New lead submitted",
		fmt.Sprintf("Partner %s submitted lead %q (#%d).\n", partner.Name, lead.CustomerName, lead.ID))
}

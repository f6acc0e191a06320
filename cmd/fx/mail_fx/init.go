package mail_fx

import (
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"edupanel/internal/config"
	"edupanel/internal/repositories"
	"edupanel/internal/services"
)

var Module = fx.Provide(provideMailSender, provideEmailLogRepo, provideMailService, provideEmailLogService)

func provideMailSender(cfg *config.Config) services.MailSender {
	switch cfg.Mail.Provider {
	case "smtp":
		return services.NewSMTPSender(services.SMTPConfig{
			Host:       cfg.SMTP.Host,
			Port:       cfg.SMTP.Port,
			Username:   cfg.SMTP.Username,
			Password:   cfg.SMTP.Password,
			UseSSL:     cfg.SMTP.UseSSL,
			RequireTLS: cfg.SMTP.RequireTLS,
		})
	case "resend":
		return services.NewResendSender(resend.NewClient(cfg.Resend.APIKey))
	default:
		log.Warn().Msg("MAIL_PROVIDER=log: e-mails are written to the log and not delivered")
		return services.NewLogSender()
	}
}

func provideEmailLogRepo(db *gorm.DB) repositories.EmailLogRepository {
	return repositories.NewEmailLogRepository(db)
}

func provideMailService(cfg *config.Config, sender services.MailSender, logs repositories.EmailLogRepository) services.IMailService {
	return services.NewMailService(services.MailConfig{
		From:       cfg.Mail.From,
		FromName:   cfg.Mail.FromName,
		AppName:    cfg.App.Name,
		AppBaseURL: cfg.App.BaseURL,
	}, sender, logs)
}

func provideEmailLogService(logs repositories.EmailLogRepository) services.EmailLogServiceInterface {
	return services.NewEmailLogService(logs)
}

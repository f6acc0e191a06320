package services

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/rs/zerolog/log"

	"edupanel/internal/models/db_models"
	"edupanel/internal/repositories"
	"edupanel/pkg/metrics"
)

type IMailService interface {
	SendWelcome(ctx context.Context, to, clientName, tempPassword string) error
	SendInvitation(ctx context.Context, to, companyName, token string) error
	SendPasswordReset(ctx context.Context, to, token string) error
	SetPasswordURL(token string) string
}

type MailConfig struct {
	From       string
	FromName   string
	AppName    string
	AppBaseURL string
}

type mailService struct {
	cfg     MailConfig
	sender  MailSender
	logs    repositories.EmailLogRepository
	htmlTpl *htmltemplate.Template
	textTpl *texttemplate.Template
	now     func() time.Time
}

func NewMailService(cfg MailConfig, sender MailSender, logs repositories.EmailLogRepository) IMailService {
	return &mailService{
		cfg:     cfg,
		sender:  sender,
		logs:    logs,
		htmlTpl: htmltemplate.Must(htmltemplate.New("html").Parse(baseHTMLTemplate)),
		textTpl: texttemplate.Must(texttemplate.New("text").Parse(plainTextTemplate)),
		now:     time.Now,
	}
}

// ------------------- Public API -------------------

func (s *mailService) SetPasswordURL(token string) string {
	return fmt.Sprintf("%s/set-password/%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), token)
}

func (s *mailService) SendWelcome(ctx context.Context, to, clientName, tempPassword string) error {
	return s.deliver(ctx, db_models.EmailWelcome, to, EmailData{
		Title: fmt.Sprintf("Welcome to %s", s.cfg.AppName),
		Intro: fmt.Sprintf("An administrator account has been created for %s. Sign in with the temporary password below and change it after your first login.", clientName),
		Details: []EmailDetail{
			{Label: "Login e-mail", Value: to},
			{Label: "Temporary password", Value: tempPassword},
		},
		ButtonURL: strings.TrimRight(s.cfg.AppBaseURL, "/") + "/login",
		ButtonTxt: "Sign in",
	})
}

func (s *mailService) SendInvitation(ctx context.Context, to, companyName, token string) error {
	return s.deliver(ctx, db_models.EmailInvitation, to, EmailData{
		Title:     fmt.Sprintf("You have been invited to %s", s.cfg.AppName),
		Intro:     fmt.Sprintf("%s invited you to join the training platform. Set your password to get access.", companyName),
		ButtonURL: s.SetPasswordURL(token),
		ButtonTxt: "Set password",
		Footnote:  "The link is valid for 24 hours.",
	})
}

func (s *mailService) SendPasswordReset(ctx context.Context, to, token string) error {
	return s.deliver(ctx, db_models.EmailPasswordReset, to, EmailData{
		Title:     "Reset your password",
		Intro:     "We received a request to reset your password. If you did not request this, you can safely ignore this e-mail.",
		ButtonURL: s.SetPasswordURL(token),
		ButtonTxt: "Reset password",
		Footnote:  "The link is valid for 1 hour.",
	})
}

// deliver renders, sends and records one attempt. The send error is returned;
// a failure to write the log row is only logged.
func (s *mailService) deliver(ctx context.Context, typ db_models.EmailType, to string, data EmailData) error {
	data.AppName = s.cfg.AppName
	data.Year = s.now().Year()

	html, text, err := s.renderEmail(data)
	if err != nil {
		return fmt.Errorf("render %s e-mail: %w", typ, err)
	}

	msgID, sendErr := s.sender.Send(ctx, MailMessage{
		From:     s.cfg.From,
		FromName: s.cfg.FromName,
		To:       to,
		Subject:  data.Title,
		HTML:     html,
		Text:     text,
	})

	entry := &db_models.EmailLog{
		Recipient:         to,
		Sender:            s.cfg.From,
		Subject:           data.Title,
		Type:              typ,
		Status:            db_models.EmailSent,
		Provider:          s.sender.Name(),
		ProviderMessageID: msgID,
	}
	if sendErr != nil {
		entry.Status = db_models.EmailFailed
		entry.Error = sendErr.Error()
	}
	metrics.EmailsSent.WithLabelValues(string(typ), string(entry.Status)).Inc()

	if err := s.logs.Create(context.WithoutCancel(ctx), entry); err != nil {
		log.Error().Err(err).Str("type", string(typ)).Msg("failed to write e-mail log")
	}

	if sendErr != nil {
		return fmt.Errorf("send %s e-mail via %s: %w", typ, s.sender.Name(), sendErr)
	}
	return nil
}

// ------------------- Rendering -------------------

type EmailDetail struct {
	Label string
	Value string
}

type EmailData struct {
	Title     string
	Intro     string
	Details   []EmailDetail
	ButtonURL string
	ButtonTxt string
	Footnote  string
	AppName   string
	Year      int
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
</head>
<body style="margin:0;padding:0;background:#f4f4f5;font-family:-apple-system,Segoe UI,Roboto,Helvetica,Arial,sans-serif;">
  <div style="padding:32px 16px;">
    <div style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:8px;overflow:hidden;">
      <div style="padding:24px 32px;border-bottom:1px solid #e4e4e7;font-weight:700;color:#1d4ed8;">{{.AppName}}</div>
      <div style="padding:32px;">
        <h1 style="margin:0 0 16px;font-size:24px;color:#18181b;">{{.Title}}</h1>
        <p style="margin:0 0 20px;line-height:1.6;color:#3f3f46;">{{.Intro}}</p>
        {{if .Details}}
        <table style="margin:0 0 20px;border-collapse:collapse;">
          {{range .Details}}
          <tr>
            <td style="padding:4px 16px 4px 0;color:#71717a;">{{.Label}}</td>
            <td style="padding:4px 0;font-family:monospace;color:#18181b;">{{.Value}}</td>
          </tr>
          {{end}}
        </table>
        {{end}}
        {{if .ButtonURL}}
        <p style="margin:24px 0;">
          <a href="{{.ButtonURL}}" style="display:inline-block;padding:12px 24px;background:#2563eb;color:#ffffff;text-decoration:none;border-radius:6px;font-weight:600;">{{.ButtonTxt}}</a>
        </p>
        <p style="margin:0;font-size:13px;color:#71717a;">If the button doesn't work, paste this link into your browser:<br>
          <a href="{{.ButtonURL}}" style="color:#2563eb;word-break:break-all;">{{.ButtonURL}}</a>
        </p>
        {{end}}
        {{if .Footnote}}<p style="margin:20px 0 0;font-size:12px;color:#a1a1aa;">{{.Footnote}}</p>{{end}}
      </div>
      <div style="padding:16px 32px;font-size:12px;color:#a1a1aa;text-align:center;border-top:1px solid #e4e4e7;">
        &copy; {{.Year}} {{.AppName}}
      </div>
    </div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{range .Details}}
{{.Label}}: {{.Value}}{{end}}
{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}{{if .Footnote}}
{{.Footnote}}
{{end}}
-- {{.AppName}} (c) {{.Year}}
`

func (s *mailService) renderEmail(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

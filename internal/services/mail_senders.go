package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

// MailMessage is a rendered multipart e-mail.
type MailMessage struct {
	From     string
	FromName string
	To       string
	Subject  string
	HTML     string
	Text     string
}

// MailSender delivers a rendered message and returns the provider's message id, if any.
type MailSender interface {
	Name() string
	Send(ctx context.Context, msg MailMessage) (string, error)
}

func formatFromHeader(name, from string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return from
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), from)
}

// ------------------- SMTP -------------------

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	UseSSL     bool // SMTPS on 465; otherwise STARTTLS
	RequireTLS bool // fail if STARTTLS is not offered
}

type smtpSender struct {
	cfg     SMTPConfig
	timeout time.Duration
}

func NewSMTPSender(cfg SMTPConfig) MailSender {
	return &smtpSender{cfg: cfg, timeout: 10 * time.Second}
}

func (s *smtpSender) Name() string { return "smtp" }

func buildMIMEMessage(msg MailMessage, now time.Time) []byte {
	boundary := fmt.Sprintf("alt_%d", now.UnixNano())

	var b bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&b, format, a...) }

	write("From: %s\r\n", formatFromHeader(msg.FromName, msg.From))
	write("To: %s\r\n", msg.To)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", msg.Subject))
	write("Date: %s\r\n", now.Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", msg.Text)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", msg.HTML)

	write("--%s--\r\n", boundary)
	return b.Bytes()
}

func (s *smtpSender) Send(ctx context.Context, msg MailMessage) (string, error) {
	body := buildMIMEMessage(msg, time.Now())
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	dialer := &net.Dialer{Timeout: s.timeout}
	var (
		conn net.Conn
		err  error
	)
	if s.cfg.UseSSL {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return "", fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return "", fmt.Errorf("smtp client: %w", err)
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return "", fmt.Errorf("smtp starttls: %w", err)
			}
		} else if s.cfg.RequireTLS {
			return "", fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return "", fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err = c.Mail(msg.From); err != nil {
		return "", err
	}
	if err = c.Rcpt(msg.To); err != nil {
		return "", err
	}
	w, err := c.Data()
	if err != nil {
		return "", err
	}
	if _, err = w.Write(body); err != nil {
		return "", err
	}
	return "", w.Close()
}

// ------------------- Resend -------------------

type resendSender struct {
	client *resend.Client
}

func NewResendSender(client *resend.Client) MailSender {
	return &resendSender{client: client}
}

func (s *resendSender) Name() string { return "resend" }

func (s *resendSender) Send(ctx context.Context, msg MailMessage) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    formatFromHeader(msg.FromName, msg.From),
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}

// ------------------- Log only -------------------

type logSender struct{}

// NewLogSender returns a sender that only writes the message to the log.
func NewLogSender() MailSender { return logSender{} }

func (logSender) Name() string { return "log" }

func (logSender) Send(_ context.Context, msg MailMessage) (string, error) {
	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("text", msg.Text).
		Msg("e-mail not delivered (log provider)")
	return "", nil
}

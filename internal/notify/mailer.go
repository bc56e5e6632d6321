package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"event-registration/internal/config"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Message 一封 HTML 郵件
type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var (
	smtpSendMail = smtp.SendMail
	readEnvFile  = godotenv.Read
)

// SMTPMailer 以 PLAIN auth 透過 SMTP 寄送
type SMTPMailer struct {
	addr     string
	host     string
	from     string
	username string
	password string
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, msg.To, msg.Subject, msg.HTML,
	)
	if err := smtpSendMail(m.addr, auth, m.from, []string{msg.To}, []byte(body)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// LogMailer 只記錄郵件內容，開發環境使用
type LogMailer struct {
	log zerolog.Logger
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("body_bytes", len(msg.HTML)).
		Msg("email (log provider)")
	return nil
}

// NewMailer 依 provider 建立 Mailer；smtp 帳密來源由 CredentialsSource 決定
func NewMailer(n config.Notifier, s config.SMTP, log zerolog.Logger) (Mailer, error) {
	switch strings.ToLower(n.Provider) {
	case "", "log":
		return &LogMailer{log: log}, nil
	case "smtp":
		user, pass, err := loadCredentials(n.CredentialsSource, s)
		if err != nil {
			return nil, err
		}
		return &SMTPMailer{
			addr:     fmt.Sprintf("%s:%d", s.Host, s.Port),
			host:     s.Host,
			from:     n.FromAddress,
			username: user,
			password: pass,
		}, nil
	default:
		return nil, fmt.Errorf("unknown notifier provider %q", n.Provider)
	}
}

// loadCredentials 支援 "env" 與 "file:<path>"；檔案為 dotenv 格式，含 SMTP_USERNAME / SMTP_PASSWORD
func loadCredentials(source string, s config.SMTP) (string, string, error) {
	switch {
	case source == "" || source == "env":
		return s.Username, s.Password, nil
	case strings.HasPrefix(source, "file:"):
		path := strings.TrimPrefix(source, "file:")
		vals, err := readEnvFile(path)
		if err != nil {
			return "", "", fmt.Errorf("read smtp credentials %s: %w", path, err)
		}
		return vals["SMTP_USERNAME"], vals["SMTP_PASSWORD"], nil
	default:
		return "", "", fmt.Errorf("unknown credentials source %q", source)
	}
}

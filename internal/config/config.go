// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config 服務啟動所需的全部環境設定
type Config struct {
	HTTPAddr          string        `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL       string        `env:"DATABASE_URL,required,notEmpty"`
	RedisAddr         string        `env:"REDIS_ADDR,required,notEmpty"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	JWTSecret         string        `env:"JWT_SECRET,required,notEmpty"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	AdminKey          string        `env:"ADMIN_KEY"`
	DisplayCodePrefix string        `env:"DISPLAY_CODE_PREFIX" envDefault:"EVT_"`
	WorkerCount       int           `env:"WORKER_COUNT" envDefault:"2"`
	WorkerQueueSize   int           `env:"WORKER_QUEUE_SIZE" envDefault:"64"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	SiteURL           string        `env:"SITE_URL" envDefault:"http://localhost:8080"`

	// 只有事先報名者能簽到的活動 ID；其餘活動簽到時自動報名
	PreRegisteredEvents []int `env:"ATTENDANCE_PREREGISTERED_EVENTS" envDefault:"1,2,3,4,5,6,7,8,9" envSeparator:","`

	Notifier Notifier
	SMTP     SMTP
	AMQP     AMQP
}

// Notifier 通知寄送設定 (provider / fromAddress / credentialsSource)
type Notifier struct {
	Provider          string `env:"NOTIFIER_PROVIDER" envDefault:"log"`
	FromAddress       string `env:"NOTIFIER_FROM_ADDRESS"`
	CredentialsSource string `env:"NOTIFIER_CREDENTIALS_SOURCE" envDefault:"env"`
}

// SMTP 郵件伺服器設定；帳密僅在 credentialsSource=env 時使用
type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
}

// AMQP 為空 URL 時使用行程內 worker pool
type AMQP struct {
	URL   string `env:"AMQP_URL"`
	Queue string `env:"AMQP_QUEUE" envDefault:"registration-emails"`
}

var envParse = env.Parse

// Load 由環境變數讀取設定並檢查組合是否合法
func Load() (*Config, error) {
	var cfg Config
	if err := envParse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 檢查跨欄位限制
func (c *Config) Validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("無效的 WORKER_COUNT: %d", c.WorkerCount)
	}
	if c.WorkerQueueSize < 0 {
		return fmt.Errorf("無效的 WORKER_QUEUE_SIZE: %d", c.WorkerQueueSize)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("無效的 SESSION_TTL: %s", c.SessionTTL)
	}
	switch strings.ToLower(c.Notifier.Provider) {
	case "log":
	case "smtp":
		if c.SMTP.Host == "" {
			return fmt.Errorf("SMTP_HOST 未設定")
		}
		if c.Notifier.FromAddress == "" {
			return fmt.Errorf("NOTIFIER_FROM_ADDRESS 未設定")
		}
	default:
		return fmt.Errorf("unknown notifier provider %q", c.Notifier.Provider)
	}
	return nil
}

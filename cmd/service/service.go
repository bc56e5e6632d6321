// @title        Event Registration API
// @version      1.0
// @description  活動報名系統後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event-registration/internal/api"
	"event-registration/internal/attendance"
	"event-registration/internal/cache"
	"event-registration/internal/config"
	"event-registration/internal/database"
	"event-registration/internal/logger"
	"event-registration/internal/middleware"
	"event-registration/internal/notify"
	"event-registration/internal/rabbit"
	"event-registration/internal/registration"
	"event-registration/internal/router"
	"event-registration/internal/service"
	"event-registration/internal/worker"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	_ "event-registration/docs" // 引入 swag 產出的 docs
)

const shutdownTimeout = 10 * time.Second

// broker 由 rabbit.Client 實作
type broker interface {
	notify.Publisher
	notify.Subscriber
	Close()
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	newMailer       = notify.NewMailer
	newBroker       = dialBroker
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	signalContext   = func() (context.Context, context.CancelFunc) {
		return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	}
	logOutput io.Writer = os.Stdout
	exitFunc            = os.Exit
)

func dialBroker(url, queue string, log zerolog.Logger) (broker, error) {
	c, err := rabbit.NewRabbit(url, queue, log)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	log := logger.New(cfg.LogLevel, logOutput)

	ctx, stop := signalContext()
	defer stop()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	mailer, err := newMailer(cfg.Notifier, cfg.SMTP, log)
	if err != nil {
		return fmt.Errorf("notifier 設定失敗: %w", err)
	}
	dispatcher := notify.NewDispatcher(mailer, cfg.SiteURL, log)

	if cfg.AMQP.URL != "" {
		b, err := newBroker(cfg.AMQP.URL, cfg.AMQP.Queue, log)
		if err != nil {
			return fmt.Errorf("RabbitMQ 連線失敗: %w", err)
		}
		defer b.Close()
		if err := notify.Consume(ctx, b, dispatcher.Deliver); err != nil {
			return fmt.Errorf("RabbitMQ consume 失敗: %w", err)
		}
		dispatcher.UseQueue(notify.NewAMQPQueue(b))
		log.Info().Str("queue", cfg.AMQP.Queue).Msg("notifications via rabbitmq")
	} else {
		wp := newWorkerPool(cfg.WorkerCount, cfg.WorkerQueueSize, log)
		defer wp.Stop()
		dispatcher.UseQueue(notify.NewPoolQueue(wp, dispatcher.Deliver))
		log.Info().Int("workers", cfg.WorkerCount).Msg("notifications via worker pool")
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.SessionTTL, rdb)
	engine := registration.NewEngine(registration.NewPostgresStore(db), dispatcher, log)
	marker := attendance.NewMarker(attendance.NewPostgresStore(db), cfg.PreRegisteredEvents)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = api.NewValidator()
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.WithLogger(log))

	router.Setup(e, router.Deps{
		DB:                db,
		Cache:             rdb,
		Tokens:            tokens,
		Registrar:         engine,
		Marker:            marker,
		AdminKey:          cfg.AdminKey,
		DisplayCodePrefix: cfg.DisplayCodePrefix,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server starting")
		errCh <- startServer(e, cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownServer(sctx, e); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}

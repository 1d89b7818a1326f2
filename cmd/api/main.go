package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/infra/media"
	"github.com/BruksfildServices01/barber-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barber-booking/internal/infra/redisstore"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	shutdownTimeout = 15 * time.Second
	reminderLockTTL = 10 * time.Minute
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(cfg.LogLevel, cfg.LogPretty)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()
	clock := timezone.ClockIn(loc)

	// ======================================================
	// STORAGE
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	loyaltyRepo := infraRepo.NewLoyaltyGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	notificationRepo := infraRepo.NewNotificationGormRepository(db)

	var (
		revocations session.RevocationStore = session.NewMemoryRevocations()
		locker      scheduler.Locker
	)
	if cfg.RedisURL != "" {
		rs, err := redisstore.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rs.Close()

		revocations = rs
		locker = rs
	} else {
		log.Warn().Msg("REDIS_URL not set, sessions revoke in memory and jobs run unlocked")
	}

	var images media.Store = media.Disabled{}
	if cfg.S3.Enabled() {
		images = media.NewS3Store(media.S3Options{
			Bucket:        cfg.S3.Bucket,
			Region:        cfg.S3.Region,
			Endpoint:      cfg.S3.Endpoint,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
	}

	// ======================================================
	// BACKGROUND DISPATCHERS
	// ======================================================
	auditLog := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLog, cfg.NotifyQueueSize)
	defer auditDispatcher.Close()

	notifier := notify.NewDispatcher(
		channels(cfg),
		notificationRepo,
		notify.Recipients{OwnerPhone: cfg.OwnerPhone, OwnerEmail: cfg.OwnerEmail},
		cfg.NotifyQueueSize,
		2,
	)
	defer notifier.Close()

	// ======================================================
	// SESSIONS
	// ======================================================
	hash, err := session.HashPassword(cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		return err
	}
	sessions := session.NewManager(cfg.JWTSecret, hash, cfg.SessionTTL, revocations)

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	uc := routes.RegisterRoutes(r, routes.Deps{
		Config:        cfg,
		Clock:         clock,
		Appointments:  appointmentRepo,
		Loyalty:       loyaltyRepo,
		Catalog:       catalogRepo,
		Notifications: notificationRepo,
		Notifier:      notifier,
		Sender:        notifier,
		Images:        images,
		Audit:         auditDispatcher,
		Sessions:      sessions,
		AuditLogs:     auditLog,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ======================================================
	// SCHEDULER
	// ======================================================
	jobs := scheduler.New(loc, locker)
	if err := jobs.Add("reminders", cfg.ReminderSchedules, reminderLockTTL, func(ctx context.Context) error {
		_, err := uc.Reminders.Execute(ctx)
		return err
	}); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("timezone", loc.String()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return jobs.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// channels picks real providers when configured and log-only fallbacks
// otherwise, so bookings work in development without credentials.
func channels(cfg *config.Config) []notify.Channel {
	var out []notify.Channel

	if cfg.Twilio.Enabled() {
		out = append(out, notify.NewTwilioSMS(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromPhone))
	} else {
		log.Warn().Msg("Twilio not configured, SMS will only be logged")
		out = append(out, notify.NewLogChannel(notify.ChannelSMS))
	}

	if cfg.SMTP.Enabled() {
		out = append(out, notify.NewSMTPEmail(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From))
	} else {
		log.Warn().Msg("SMTP not configured, email will only be logged")
		out = append(out, notify.NewLogChannel(notify.ChannelEmail))
	}

	return out
}

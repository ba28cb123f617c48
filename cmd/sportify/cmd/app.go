package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"sportify/config"
	"sportify/internal/adapters/auth"
	"sportify/internal/adapters/email"
	"sportify/internal/domain"
	"sportify/internal/repository/postgres"
	"sportify/internal/services"
)

// app holds the wired services shared by the commands.
type app struct {
	db         *sql.DB
	auth       domain.AuthService
	admins     domain.AdminService
	events     domain.EventService
	categories domain.CategoryService
	feedback   domain.FeedbackService
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func newApp(db *sql.DB, cfg *config.Config, logger *slog.Logger) (*app, error) {
	adminRepo := postgres.NewAdminRepository(db)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SES.Region,
			AccessKeyID:        cfg.Email.SES.AccessKeyID,
			SecretAccessKey:    cfg.Email.SES.SecretAccessKey,
			InsecureSkipVerify: cfg.Email.SES.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("load email templates: %w", err)
	}
	emailService := services.NewEmailService(mailer, renderer, logger)

	return &app{
		db: db,
		auth: services.NewAuthService(adminRepo, hasher,
			auth.NewJWTIssuer(cfg.JWTSecret), auth.NewJWTVerifier(cfg.JWTSecret),
			cfg.JWTExpiry, logger, cfg.RequestTimeout),
		admins:     services.NewAdminService(adminRepo, hasher, logger, cfg.RequestTimeout),
		events:     services.NewEventService(postgres.NewEventRepository(db), adminRepo, emailService, logger, cfg.RequestTimeout),
		categories: services.NewCategoryService(postgres.NewCategoryRepository(db), logger, cfg.RequestTimeout),
		feedback:   services.NewFeedbackService(postgres.NewFeedbackRepository(db), logger, cfg.RequestTimeout),
	}, nil
}

// bootstrapSuperAdmin creates the configured super admin unless the username is taken.
func bootstrapSuperAdmin(ctx context.Context, admins domain.AdminService, sa config.SuperAdminConfig, logger *slog.Logger) error {
	if sa.Username == "" || sa.Email == "" || sa.Password == "" {
		logger.Warn("super admin bootstrap env vars not fully set; skipping")
		return nil
	}
	admin, created, err := admins.BootstrapSuperAdmin(ctx, sa.Username, sa.Email, sa.Password)
	if err != nil {
		return fmt.Errorf("bootstrap super admin: %w", err)
	}
	if created {
		logger.Info("bootstrapped super admin", "username", admin.Username, "id", admin.ID)
	} else {
		logger.Info("super admin already exists", "username", admin.Username)
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sportify/config"
)

func newBootstrapAdminCommand() *cobra.Command {
	var username, email, password string
	bootstrap := &cobra.Command{
		Use:   "bootstrap-admin",
		Short: "Create the first super admin",
		Long: `Create a super admin account. Flags default to SUPER_ADMIN_USERNAME,
SUPER_ADMIN_EMAIL and SUPER_ADMIN_PASSWORD. Nothing changes when the username
already exists, so the command is safe to run on every deploy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			sa := cfg.SuperAdmin
			if username != "" {
				sa.Username = username
			}
			if email != "" {
				sa.Email = email
			}
			if password != "" {
				sa.Password = password
			}
			if sa.Username == "" || sa.Email == "" || sa.Password == "" {
				return fmt.Errorf("username, email and password are required")
			}
			return runBootstrapAdmin(cmd.Context(), cfg, sa)
		},
	}
	bootstrap.Flags().StringVar(&username, "username", "", "super admin username")
	bootstrap.Flags().StringVar(&email, "email", "", "super admin email")
	bootstrap.Flags().StringVar(&password, "password", "", "super admin password")
	return bootstrap
}

func runBootstrapAdmin(ctx context.Context, cfg *config.Config, sa config.SuperAdminConfig) error {
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	db, err := openDB(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := newApp(db, cfg, logger)
	if err != nil {
		return err
	}
	return bootstrapSuperAdmin(ctx, a.admins, sa, logger)
}

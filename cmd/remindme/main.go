package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/remindme/internal/config"
	"github.com/xxxsen/remindme/internal/db"
	"github.com/xxxsen/remindme/internal/handler"
	"github.com/xxxsen/remindme/internal/middleware"
	"github.com/xxxsen/remindme/internal/pkg/jwt"
	"github.com/xxxsen/remindme/internal/repo"
	"github.com/xxxsen/remindme/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "remindme",
		Short: "remindme backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run remindme server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, conn, err := setup(configPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			return runServer(cfg, conn)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, conn, err := setup(configPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			logutil.GetLogger(context.Background()).Info("migrations applied")
			return nil
		},
	}

	for _, cmd := range []*cobra.Command{runCmd, migrateCmd} {
		cmd.Flags().StringVar(&configPath, "config", "", "path to config.json (environment variables are used when omitted)")
		rootCmd.AddCommand(cmd)
	}

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

// setup loads config, initialises logging and returns a migrated database.
func setup(configPath string) (*config.Config, *sql.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded",
		zap.String("config", configPath),
		zap.String("db_driver", cfg.Database.Driver),
	)

	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := db.ApplyMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	return cfg, conn, nil
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.Int("jwt_ttl_hours", cfg.JWTTTLHours),
		zap.Bool("mail_configured", cfg.Mail.Host != ""),
	)

	tokens := jwt.NewManager([]byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	authService := service.NewAuthService(repo.NewUserRepo(conn), tokens)
	reminderService := service.NewReminderService(repo.NewReminderRepo(conn))
	notificationService := service.NewNotificationService(service.NewEmailSender(cfg.Mail))

	deps := handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authService),
		Reminders:     handler.NewReminderHandler(reminderService),
		Notifications: handler.NewNotificationHandler(notificationService),
		Tokens:        tokens,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

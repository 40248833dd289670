package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rhythm-registry/internal/config"
	"rhythm-registry/internal/database"
	"rhythm-registry/internal/router"
	"rhythm-registry/internal/utils"
)

const shutdownTimeout = 10 * time.Second

const configFlag = "config"

func newRootCommand() *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:           "rhythm-registry",
		Short:         "Artist and song registry API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, v)
		},
	}
	root.PersistentFlags().String(configFlag, "", "optional config file (yaml, json or toml)")
	root.PersistentFlags().Int("port", 3000, "HTTP listen port")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("port", root.PersistentFlags().Lookup("port"))
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd, v)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the database tables and exit",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd, v)
			},
		},
	)
	return root
}

// loadConfig resolves configuration and applies process-wide settings.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (*config.Config, error) {
	path, _ := cmd.Flags().GetString(configFlag)
	cfg, err := config.Load(v, path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setupLogging(cfg)
	if err := utils.SetJWTSecret(cfg.Auth.JWTSecret); err != nil {
		return nil, err
	}
	utils.SetBcryptCost(cfg.Auth.BcryptCost)
	return cfg, nil
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.GinMode != gin.ReleaseMode {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func runMigrate(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := loadConfig(cmd, v)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := database.InitDB(ctx, cfg.Database); err != nil {
		return err
	}
	defer database.CloseDB()

	if err := database.CreateTables(ctx, database.DB); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	log.Info().Msg("database schema is up to date")
	return nil
}

func runServe(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := loadConfig(cmd, v)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.InitDB(ctx, cfg.Database); err != nil {
		return err
	}
	defer database.CloseDB()

	if err := database.CreateTables(ctx, database.DB); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.NewEngine(cfg, database.DB, time.Now()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("rhythm registry API listening")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

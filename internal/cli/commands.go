// Package cli provides the Cobra-based entrypoint for the back office server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "backoffice/internal/config"
	router "backoffice/internal/http"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "backoffice",
	Short:         "E-commerce back office API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg := viper.GetString("config"); cfg != "" {
			viper.SetConfigFile(cfg)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		}
		logger, err := utils.NewLogger(viper.GetString("log_level"))
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		utils.SetLogger(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug|info|warn|error")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(intconfig.LoadEnv())
		},
	}
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Bool("migrate", false, "apply pending migrations before serving")
	_ = viper.BindPFlag("app_addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("auto_migrate", serveCmd.Flags().Lookup("migrate"))
	rootCmd.AddCommand(serveCmd)

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := intconfig.MigrateUp(intconfig.LoadEnv().DSN); err != nil {
				return err
			}
			utils.LogEvent("", "migrate", "up", "migrations applied")
			return nil
		},
	})
	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := intconfig.MigrateDown(intconfig.LoadEnv().DSN, steps); err != nil {
				return err
			}
			utils.LogEvent("", "migrate", "down", "migrations rolled back", zap.Int("steps", steps))
			return nil
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(downCmd)
	rootCmd.AddCommand(migrateCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func serve(env intconfig.Env) error {
	log := utils.Logger()
	defer func() { _ = log.Sync() }()

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	if env.AutoMigrate {
		if err := intconfig.MigrateUp(env.DSN); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	if _, err := intconfig.ConnectDB(env.DSN); err != nil {
		return err
	}
	defer intconfig.CloseDB()

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

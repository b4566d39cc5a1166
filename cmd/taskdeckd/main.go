package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/api/response"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/server"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
)

var (
	configPath string
	bindAddr   string
)

var rootCmd = &cobra.Command{
	Use:   "taskdeckd",
	Short: "Taskdeck task-management server",
	Long:  `Taskdeck is a task-management REST backend with role-based authorization and dependency-gated status transitions.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the taskdeck server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to TOML config file")
	serveCmd.Flags().StringVar(&bindAddr, "bind", "", "Address to bind the server to (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if bindAddr != "" {
		cfg.Addr = bindAddr
	}

	log := logrus.New()
	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
		response.Debug = true
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}

	if cfg.Bootstrap.ManagerEmail != "" && cfg.Bootstrap.ManagerPassword != "" {
		auth := service.NewAuthService(sqlite.NewUserRepository(db), sqlite.NewTokenRepository(db))
		manager, err := auth.EnsureManager(cfg.Bootstrap.ManagerName, cfg.Bootstrap.ManagerEmail, cfg.Bootstrap.ManagerPassword)
		if err != nil {
			db.Close()
			return err
		}
		log.WithField("email", manager.Email).Info("manager account ready")
	}

	srv := server.New(cfg.Addr, db, log, api.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
	})
	return srv.Run()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("taskdeckd failed")
		os.Exit(1)
	}
}

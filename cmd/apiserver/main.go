package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crmdeck/crmdeck/internal/apiserver"
	"github.com/crmdeck/crmdeck/internal/apiserver/database"
	"github.com/crmdeck/crmdeck/internal/common/config"
	"github.com/crmdeck/crmdeck/pkg/logger"
	"github.com/crmdeck/crmdeck/pkg/trace"
	"github.com/crmdeck/crmdeck/pkg/version"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Provision the master tenant, superadmin, and demo data, then exit",
		Run: func(cmd *cobra.Command, args []string) {
			runSeed()
		},
	}

	rootCmd = &cobra.Command{
		Use:   "apiserver",
		Short: "CRM API Server",
		Long:  `The CRM backend: authentication, tenant provisioning, user management, and customer records`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "configs/apiserver.yaml", "path to configuration file")
	rootCmd.AddCommand(versionCmd, seedCmd)
}

func runSeed() {
	cfg, cfgPath, err := config.LoadConfig[config.APIServerConfig](configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	lg, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		lg.Fatal("failed to open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := apiserver.Seed(context.Background(), db, lg); err != nil {
		lg.Fatal("seeding failed", zap.Error(err))
	}
	lg.Info("seeding complete")
}

func run() {
	cfg, cfgPath, err := config.LoadConfig[config.APIServerConfig](configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	lg, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	lg.Info("starting apiserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	ctx := context.Background()
	if cfg.Tracing.Enabled {
		shutdown, err := trace.Init(ctx, &cfg.Tracing, lg)
		if err != nil {
			lg.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer func() {
				shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(shCtx)
			}()
		}
	}

	srv, err := apiserver.NewServer(cfg, lg)
	if err != nil {
		lg.Fatal("failed to build server", zap.Error(err))
	}
	defer func() { _ = srv.Close() }()

	if err := srv.Run(ctx); err != nil {
		lg.Fatal("server exited", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

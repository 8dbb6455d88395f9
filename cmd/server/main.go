package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/playwatch/rewardd/internal/adnet"
	"github.com/playwatch/rewardd/internal/api"
	"github.com/playwatch/rewardd/internal/api/middleware"
	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/logging"
	"github.com/playwatch/rewardd/internal/reset"
	"github.com/playwatch/rewardd/internal/rewards"
	"github.com/playwatch/rewardd/internal/store"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case "reset":
		if err := runReset(); err != nil {
			slog.Error("reset error", "error", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("rewardd %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: rewardd <command>

Commands:
  serve     Start the HTTP server
  reset     Run one daily counter sweep and exit
  version   Print version information
`)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	slog.Info("starting rewardd",
		"version", version,
		"network", cfg.Network,
		"timezone", cfg.Timezone,
		"port", cfg.Port,
		"dbPath", cfg.DBPath,
		"logLevel", cfg.LogLevel,
	)

	db, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	slog.Info("database opened", "path", cfg.DBPath)

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database migrations applied")

	ads := setupAdNetwork(cfg)

	svc := rewards.NewService(db, ads, cfg)
	svc.Start()
	defer svc.Stop()

	runner := rewards.NewAutoAdRunner(svc)
	runner.Start()
	defer runner.Stop()

	resetDriver := reset.NewDriver(db, cfg.Location())
	if err := resetDriver.Start(); err != nil {
		return fmt.Errorf("failed to start reset driver: %w", err)
	}
	defer resetDriver.Stop()

	sessions, err := middleware.NewSessionStore(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}

	api.Version = version
	router := api.NewRouter(&api.Dependencies{
		DB:       db,
		Service:  svc,
		Sessions: sessions,
		Auth:     middleware.NewUserAuth(cfg.AuthSecret),
		Limiter:  middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Config:   cfg,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("initiating graceful shutdown", "timeout", config.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// setupAdNetwork builds the provider rotation. The house provider always
// rides last so manual tasks keep working when the external network is down.
func setupAdNetwork(cfg *config.Config) *adnet.ProviderSet {
	var (
		providers []adnet.Provider
		rps       []int
	)

	if cfg.AdNetworkURL != "" {
		client := adnet.NewHTTPClient()
		providers = append(providers, adnet.NewPostbackProvider("postback", cfg.AdNetworkURL, cfg.AdNetworkKey, client))
		rps = append(rps, cfg.AdNetworkRPS)
	}

	providers = append(providers, adnet.HouseProvider{})
	rps = append(rps, cfg.AdNetworkRPS)

	return adnet.NewProviderSet(providers, rps)
}

func runReset() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	db, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	reset.NewDriver(db, cfg.Location()).RunOnce()
	return nil
}

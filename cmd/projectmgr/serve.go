package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/nishant152030/Project-manager-2/internal/api"
	"github.com/nishant152030/Project-manager-2/internal/auth"
	"github.com/nishant152030/Project-manager-2/internal/config"
	"github.com/nishant152030/Project-manager-2/internal/logging"
	"github.com/nishant152030/Project-manager-2/internal/scheduler"
	"github.com/nishant152030/Project-manager-2/internal/state"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Start the project management API.

The database is created and migrated on startup. A JWT signing key of at
least 32 characters is required (auth.jwt_key or JWT_KEY).

When a config file is present it is watched, and log.level changes are
applied without a restart. SIGINT or SIGTERM drains in-flight requests for up
to server.shutdown_timeout.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	key, err := config.GetJWTKey(cfg)
	if err == nil {
		err = config.ValidateJWTKey(key)
	}
	if err != nil {
		return fmt.Errorf("jwt key: %w", err)
	}

	log, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Close()

	db, err := state.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	tokens := auth.NewTokenIssuer(key, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.TokenTTL)
	sched := scheduler.New()
	sched.SetDebugLog(log.Debugf)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := api.NewRouter(api.Deps{
		Store:       db,
		Auth:        auth.NewService(db, tokens),
		Scheduler:   sched,
		Logger:      log,
		Registry:    reg,
		CORSOrigins: cfg.CORS.Origins,
		AuthRate:    rate.Limit(cfg.Auth.LoginRate),
		AuthBurst:   cfg.Auth.LoginBurst,
	})

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.Addr, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		notifySystemd(log, daemon.SdNotifyStopping)
		log.Info().Dur("timeout", cfg.Server.ShutdownTimeout).Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if path := watchableConfigPath(); path != "" {
		g.Go(func() error {
			err := config.Watch(gctx, path,
				func(next *config.Config) { applyReload(log, next) },
				func(err error) { log.Warn().Err(err).Str("path", path).Msg("config reload failed") },
			)
			// Losing the watcher only disables hot reload.
			if err != nil {
				log.Warn().Err(err).Msg("config watcher stopped")
			}
			return nil
		})
	}

	log.Info().
		Str("addr", ln.Addr().String()).
		Str("database", db.Path()).
		Str("version", Version()).
		Msg("listening")
	notifySystemd(log, daemon.SdNotifyReady)

	return g.Wait()
}

// applyReload applies the settings that can change without a restart.
func applyReload(log *logging.Logger, next *config.Config) {
	before := log.Level()
	if err := log.SetLevel(next.Log.Level); err != nil {
		log.Warn().Err(err).Msg("ignoring invalid log.level")
		return
	}
	if after := log.Level(); after != before {
		log.Info().Str("from", before.String()).Str("to", after.String()).Msg("log level changed")
	}
}

// watchableConfigPath returns the config file to watch, or "" when none exists.
func watchableConfigPath() string {
	candidates := []string{configPath}
	if configPath == "" {
		candidates = []string{config.GetProjectConfigPath(), config.GetUserConfigPath()}
	}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// notifySystemd is a no-op outside a systemd unit with NOTIFY_SOCKET set.
func notifySystemd(log *logging.Logger, state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		log.Warn().Err(err).Str("state", state).Msg("systemd notify failed")
		return
	}
	if sent {
		log.Debug().Str("state", state).Msg("systemd notified")
	}
}

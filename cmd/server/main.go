package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmarcal/futmeet-sub000/internal/api"
	rediscache "github.com/cmarcal/futmeet-sub000/internal/cache/redis"
	"github.com/cmarcal/futmeet-sub000/internal/factory"
)

type config struct {
	bind      string
	port      int
	cache     string
	cacheFile string
	redisURL  string
	logLevel  string
}

func (c *config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.cache == factory.CacheTypeRedis && c.redisURL == "" {
		return errors.New("--redis-url required when --cache=redis")
	}
	return nil
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FUTMEET")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "futmeet-server",
		Short:         "API server for organizing casual football matches",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: FUTMEET_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: FUTMEET_PORT)")
	fs.StringVar(&cfg.cache, "cache", factory.CacheTypeNone, "snapshot cache backend: none, memory, file, redis (env: FUTMEET_CACHE)")
	fs.StringVar(&cfg.cacheFile, "cache-file", "futmeet-snapshot.json", "snapshot path for the file cache (env: FUTMEET_CACHE_FILE)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection URL for the redis cache (env: FUTMEET_REDIS_URL)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error (env: FUTMEET_LOG_LEVEL)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}

func run(ctx context.Context, cfg *config) error {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.logLevel),
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:    logger,
		CacheType: cfg.cache,
		CacheFile: cfg.cacheFile,
	}

	if cfg.cache == factory.CacheTypeRedis {
		redisCfg := rediscache.DefaultConfig()
		redisCfg.URL = cfg.redisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		Store:        app.Store,
		ShareService: app.ShareService,
	})

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = cfg.bind
	serverCfg.Port = cfg.port
	server := api.NewServer(serverCfg, router, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
			logger.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	cfg := &config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/resumo-news/resumo/pkg/config"
	"github.com/resumo-news/resumo/pkg/content"
	"github.com/resumo-news/resumo/pkg/digest"
	"github.com/resumo-news/resumo/pkg/llm"
	"github.com/resumo-news/resumo/pkg/repository"
	"github.com/resumo-news/resumo/pkg/settings"
	"github.com/resumo-news/resumo/pkg/view"
	"github.com/resumo-news/resumo/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"resumo.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	APIKey string `long:"api-key" env:"API_KEY" description:"generative AI API key, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	// .env is optional, real environment wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("warning: can't load .env: %v\n", err)
	}

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug, opts.APIKey)
	log.Printf("[INFO] starting resumo version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.APIKey != "" {
		cfg.LLM.APIKey = opts.APIKey
	}
	if cfg.LLM.APIKey == "" {
		log.Printf("[WARN] no API key configured, headline requests will likely fail")
	}

	store, closeStore, err := makeStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize settings storage: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("[WARN] failed to close settings storage: %v", err)
		}
	}()

	headlines := llm.NewHeadlines(cfg.LLM)
	shell := view.New(ctx, headlines, store)

	composer, err := digest.NewComposer(headlines, cfg.Digest)
	if err != nil {
		return fmt.Errorf("failed to create digest composer: %w", err)
	}

	var extractor server.ContentExtractor
	if cfg.Content.Enabled {
		extractor = content.NewHTTPExtractor(cfg.Content.Timeout, cfg.Content.MaxChars)
		log.Printf("[INFO] source page extraction enabled, timeout %v", cfg.Content.Timeout)
	}

	srv := server.New(cfg, shell, headlines, composer, extractor, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeStore creates the settings store for the configured backend, the returned func releases its connections
func makeStore(ctx context.Context, cfg config.StorageConfig) (settings.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		log.Printf("[INFO] settings are kept in memory")
		return settings.NewMemoryStore(), noop, nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, noop, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		log.Printf("[INFO] settings are stored in redis %s, db %d", cfg.RedisAddr, cfg.RedisDB)
		return settings.NewRedisStore(rdb), rdb.Close, nil

	case config.BackendSQLite, config.BackendPostgres:
		repos, err := repository.NewRepositories(ctx, repository.Config{
			Driver:          cfg.Backend,
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
		})
		if err != nil {
			return nil, noop, err
		}
		if err := repos.Ping(ctx); err != nil {
			_ = repos.Close()
			return nil, noop, fmt.Errorf("%s ping: %w", cfg.Backend, err)
		}
		log.Printf("[INFO] settings are stored in %s database", cfg.Backend)
		return settings.NewSQLStore(repos.Setting), repos.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// SetupLog configures lgr and the standard logger, secrets are masked in the output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

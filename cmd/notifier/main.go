package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uni-meet/internal/notifier"
	"uni-meet/pkg/config"
	"uni-meet/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig.Notifier

	baseURL := flag.String("url", cfg.BaseURL, "Server base URL")
	token := flag.String("token", cfg.Token, "Bearer token (see POST /api/auth/login)")
	interval := flag.Duration("interval", cfg.Interval, "Poll interval, e.g. 60s or 10m")
	store := flag.String("store", cfg.SeenStore, "Seen store: 'file' or 'redis'")
	once := flag.Bool("once", false, "Poll once and exit")
	flag.Parse()

	if err := logger.InitLogger(config.GlobalConfig.Log.Level, config.GlobalConfig.Log.ProductionMode); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *token == "" {
		fmt.Fprintln(os.Stderr, "A bearer token is required: pass -token or set UNIMEET_NOTIFIER_TOKEN")
		os.Exit(1)
	}

	seen, closeStore, err := openSeenStore(*store, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening seen store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	n, err := notifier.New(notifier.NewHTTPFeed(*baseURL, *token, 15*time.Second), seen, notifier.Options{
		Interval: *interval,
		MaxItems: cfg.MaxItems,
		TimeZone: cfg.TimeZone,
		OnNotify: printNotifications,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating notifier: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		fresh, err := n.Poll(ctx, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Poll failed: %v\n", err)
			os.Exit(1)
		}
		printNotifications(fresh)
		return
	}

	logger.L.Info("Notifier started", zap.String("url", *baseURL), zap.Duration("interval", *interval), zap.String("store", *store))
	n.Run(ctx)
}

func openSeenStore(kind string, cfg config.NotifierConfig) (notifier.SeenStore, func(), error) {
	switch kind {
	case "", "file":
		return notifier.NewFileSeenStore(cfg.SeenFile), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return notifier.NewRedisSeenStore(client, cfg.Redis.Key), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("invalid seen store %q, use 'file' or 'redis'", kind)
	}
}

func printNotifications(batch []notifier.Notification) {
	for _, n := range batch {
		fmt.Println(n.String())
	}
}

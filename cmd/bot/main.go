package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"BullScout/internal/config"
	"BullScout/internal/edge"
	"BullScout/internal/learn"
	"BullScout/internal/metrics"
	"BullScout/internal/notifier"
	"BullScout/internal/provider"
	"BullScout/internal/scanner"
	"BullScout/internal/scheduler"
	"BullScout/internal/server"
	"BullScout/internal/store"
	"BullScout/internal/universe"
	"BullScout/internal/watch"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	_ = godotenv.Load()
	log.Println("[INFO] BullScout starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init data provider
	var prov provider.Provider
	if cfg.Provider.Source == "mock" {
		prov = provider.NewMockProvider(100)
	} else {
		prov = provider.NewYahooProvider(cfg.Proxy)
	}
	log.Printf("[INFO] data provider: %s", prov.Name())

	// Init key-value store
	var kv store.KV
	switch {
	case cfg.Redis.Addr != "":
		rkv, err := store.NewRedisKV(store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("[WARN] init redis store failed, using in-memory: %v", err)
			kv = store.NewMemoryKV()
		} else {
			kv = rkv
		}
	case cfg.Database.SQLitePath != "":
		skv, err := store.NewSQLiteKV(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using in-memory: %v", err)
			kv = store.NewMemoryKV()
		} else {
			kv = skv
		}
	default:
		kv = store.NewMemoryKV()
	}
	defer kv.Close()

	// Init universe
	uni := universe.Default()
	if cfg.UniverseFile != "" {
		u, err := universe.LoadFile(cfg.UniverseFile)
		if err != nil {
			log.Printf("[WARN] load universe file: %v, using built-in universe", err)
		} else {
			uni = u
		}
	}

	// Init engine components
	m := metrics.New()
	learner := learn.NewLearner(kv)
	evaluator := edge.NewEvaluator(learner)
	wm := watch.NewManager(kv)
	sc := scanner.NewScanner(prov, uni, evaluator)
	sc.FetchErrors = m.FetchErrors
	sc.TickersScanned = m.TickersScanned

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if !tn.Enabled() {
		log.Println("[INFO] Telegram credentials missing, notifications disabled")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, prov, wm, learner, evaluator, sc, tn, m, scheduler.ScanSettings{
		Interval: provider.Interval(cfg.Scan.Interval),
		Lookback: cfg.Scan.Lookback,
		Limit:    cfg.Scan.Limit,
		MinProb:  cfg.Scan.MinProb,
	})
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start HTTP API
	srv := server.NewServer(cfg.Server.Listen, sched, wm, learner, uni, m)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("[FATAL] HTTP server: %v", err)
		}
	}()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] BullScout is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] HTTP server shutdown: %v", err)
	}
	log.Println("[INFO] BullScout stopped")
}

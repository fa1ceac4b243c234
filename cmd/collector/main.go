package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/reviewalyze/reviewalyze/pkg/collector"
	"github.com/reviewalyze/reviewalyze/pkg/collector/config"
	"github.com/reviewalyze/reviewalyze/pkg/collector/store"
	"github.com/reviewalyze/reviewalyze/pkg/logger"
)

func main() {
	var (
		flagconf string
		keyword  string
		once     bool
	)
	flag.StringVar(&flagconf, "conf", "configs/collector.yaml", "config path")
	flag.StringVar(&keyword, "keyword", "", "collect a single keyword and exit")
	flag.BoolVar(&once, "once", false, "run one pass over the configured keywords and exit")
	flag.Parse()

	cfg, err := config.Load(flagconf)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		panic(err)
	}

	st := store.NewClient(cfg.Store.BaseURL, cfg.Store.Timeout)
	c := collector.New(cfg, st, log)
	ctx := context.Background()

	if keyword != "" {
		if _, err := c.Run(ctx, keyword); err != nil {
			log.Fatalf("collection failed: %v", err)
		}
		return
	}
	if once || cfg.Schedule == "" {
		c.RunAll(ctx)
		return
	}

	// Scheduled refresh mode: rerun the configured keywords on the cron
	// schedule until interrupted.
	cr := cron.New()
	if _, err := cr.AddFunc(cfg.Schedule, func() { c.RunAll(ctx) }); err != nil {
		log.Fatalf("invalid schedule %q: %v", cfg.Schedule, err)
	}
	log.Infof("scheduled collection: %s", cfg.Schedule)
	cr.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	<-cr.Stop().Done()
}

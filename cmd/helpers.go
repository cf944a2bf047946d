package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/trialboard/internal/config"
	"github.com/sells-group/trialboard/internal/dashboard"
	"github.com/sells-group/trialboard/internal/loader"
	"github.com/sells-group/trialboard/internal/model"
)

// buildSource constructs the configured data source.
func buildSource(c config.SourceConfig) (loader.Source, error) {
	switch c.Kind {
	case "", "fs":
		return loader.NewFSSource(c.Dir), nil
	case "http":
		return loader.NewHTTPSource(c.BaseURL, loader.HTTPOptions{
			UserAgent:         c.UserAgent,
			Timeout:           time.Duration(c.TimeoutSecs) * time.Second,
			RequestsPerSecond: c.RPS,
		})
	case "ftp":
		return loader.NewFTPSource(c.BaseURL, loader.FTPOptions{
			User:     c.FTPUser,
			Password: c.FTPPassword,
			Timeout:  time.Duration(c.TimeoutSecs) * time.Second,
		})
	}
	return nil, eris.Errorf("unknown source kind %q", c.Kind)
}

// loadRecords fetches the full record set from the configured source.
func loadRecords(ctx context.Context) ([]model.StudyRecord, error) {
	src, err := buildSource(cfg.Source)
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx, src, loader.Options{Concurrency: cfg.Source.Concurrency})
}

// loadViews returns the configured view definitions, falling back to the
// built-in set.
func loadViews() (dashboard.ViewConfig, error) {
	if cfg.Dashboard.ViewsFile == "" {
		return dashboard.DefaultViews(), nil
	}
	views, err := dashboard.LoadViews(cfg.Dashboard.ViewsFile)
	if err != nil {
		return dashboard.ViewConfig{}, err
	}
	zap.L().Info("loaded view config",
		zap.String("file", cfg.Dashboard.ViewsFile),
		zap.Strings("views", views.Names()),
	)
	return views, nil
}

// newApp loads records and views and wires them into a dashboard App.
func newApp(ctx context.Context) (*dashboard.App, error) {
	records, err := loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	views, err := loadViews()
	if err != nil {
		return nil, err
	}
	return dashboard.New(records, views, dashboard.Options{
		Quiet: time.Duration(cfg.Dashboard.DebounceMS) * time.Millisecond,
		TopN:  cfg.Dashboard.TopN,
	}), nil
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"trendwatch/app/analyzer"
	"trendwatch/app/cfg"
	"trendwatch/app/collector"
	"trendwatch/app/database"
	"trendwatch/app/export"
	"trendwatch/app/youtube"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		// A missing .env is fine, credentials may come from the environment.
		slog.Debug("No .env file found")
	}

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully.
		return
	}
	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting trending collection run",
		"version", appCfg.Version,
		"region", appCfg.Region,
		"target_count", appCfg.TargetCount,
		"page_size", appCfg.PageSize,
		"page_delay", appCfg.PageDelay,
		"store", appCfg.Store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(appCfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	client, err := youtube.NewClient(appCfg.APIKey)
	if err != nil {
		log.Fatalf("Configuration error: %v (set GOOGLE_API_KEY)", err)
	}

	coll, err := collector.New(client, store, collector.Options{
		TargetCount: appCfg.TargetCount,
		PageSize:    appCfg.PageSize,
		Region:      appCfg.Region,
		PageDelay:   time.Duration(appCfg.PageDelay) * time.Second,
		MaxRetries:  appCfg.MaxRetries,
	})
	if err != nil {
		log.Fatalf("Failed to create collector: %v", err)
	}

	outcome, err := coll.Run(ctx)
	if err != nil {
		slog.Error("Collection failed", "error", err)
		os.Exit(1)
	}
	if len(outcome.Items) == 0 {
		slog.Error("Collection produced no items, skipping analysis")
		os.Exit(1)
	}
	if outcome.Partial {
		slog.Warn("Collected fewer items than requested",
			"collected", len(outcome.Items), "target", appCfg.TargetCount)
	}

	categories := youtube.DefaultCategories()
	if appCfg.CategoriesFile != "" {
		categories, err = youtube.LoadCategories(appCfg.CategoriesFile)
		if err != nil {
			log.Fatalf("Failed to load categories file: %v", err)
		}
	}

	result, err := analyzer.New(categories).Run(outcome.Items)
	if err != nil {
		slog.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	if id, err := store.SaveResult(ctx, result); err != nil {
		slog.Warn("Failed to save analysis result", "error", err)
	} else {
		slog.Info("Analysis result saved", "id", id)
	}

	if err := writeReports(appCfg.OutputDir, result); err != nil {
		slog.Error("Failed to write reports", "error", err)
		os.Exit(1)
	}

	export.PrintSummary(os.Stdout, result)

	if !appCfg.KeepCheckpoints {
		if err := store.ClearCheckpoints(ctx); err != nil {
			slog.Warn("Failed to clear checkpoints", "error", err)
		} else {
			slog.Info("Checkpoints cleared")
		}
	}

	slog.Info("Run complete",
		"total", result.Total(),
		"shorts", len(result.Shorts),
		"regular", len(result.Regular),
		"requests", outcome.Requests)
}

func openStore(appCfg *cfg.Cfg) (database.Store, error) {
	switch appCfg.Store {
	case "mongo":
		return database.NewMongoStore(appCfg.MongoURI, appCfg.MongoDB)
	default:
		return database.NewSQLiteStore(appCfg.DBPath)
	}
}

func writeReports(outputDir string, result *analyzer.Result) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	base := export.BaseName(time.Now())

	jsonPath := filepath.Join(outputDir, base+".json")
	if err := export.WriteJSON(jsonPath, result); err != nil {
		return err
	}
	slog.Info("Saved detailed results", "path", jsonPath)

	csvPath := filepath.Join(outputDir, base+".csv")
	if err := export.WriteCSV(csvPath, result); err != nil {
		return err
	}
	slog.Info("Saved summary", "path", csvPath)

	categoriesPath := filepath.Join(outputDir, base+"_categories.csv")
	if err := export.WriteCategoryCSV(categoriesPath, result); err != nil {
		return err
	}
	slog.Info("Saved category statistics", "path", categoriesPath)

	return nil
}

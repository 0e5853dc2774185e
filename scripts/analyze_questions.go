// Prints the user question bank analysis and set statistics as JSON.
//
// Reads the same configs/config.yaml as the server and opens the configured
// storage backend, so it can be pointed at a production store to inspect
// what users have added.
//
// Usage: go run scripts/analyze_questions.go -config configs

package main

import (
	"bio_olymp_backend/internal/catalog"
	"bio_olymp_backend/internal/config"
	"bio_olymp_backend/internal/repository"
	"bio_olymp_backend/internal/service"
	"bio_olymp_backend/pkg/database"
	"bio_olymp_backend/pkg/logger"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	var (
		db  *gorm.DB
		rdb *redis.Client
	)
	switch cfg.Storage.Type {
	case "database":
		if db, err = database.InitDB(&cfg.Database, false); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
	case "redis":
		if rdb, err = database.InitRedis(&cfg.Redis); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()
	}

	store, err := repository.NewBlobStore(cfg, db, rdb)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	repo := repository.NewUserQuestionRepository(store, cfg.Storage.KeyPrefix)
	bank, err := service.NewQuestionBankService(repo, catalog.Default(), cfg.Analysis.TypePatterns)
	if err != nil {
		log.Fatalf("Invalid type patterns: %v", err)
	}

	ctx := context.Background()
	analysis, err := bank.Analyze(ctx)
	if err != nil {
		log.Fatalf("Failed to analyze question bank: %v", err)
	}
	stats, err := bank.Stats(ctx)
	if err != nil {
		log.Fatalf("Failed to compute question set stats: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]interface{}{
		"analysis": analysis,
		"stats":    stats,
	}); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}

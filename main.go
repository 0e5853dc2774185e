// @title BioOlymp trainer API
// @version 1.0
// @description Progress tracking, achievements, feedback and the user question bank of the biology olympiad trainer.

// @host localhost:8080
// @BasePath /

package main

import (
	"bio_olymp_backend/internal/app"
	"bio_olymp_backend/internal/config"
	"bio_olymp_backend/pkg/logger"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	ephemeral := flag.Bool("ephemeral", false, "keep all state in memory and discard it on exit")
	flag.Parse()

	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.Ephemeral = *ephemeral

	printStartUpBanner()

	application, err := app.NewApp(cfg, *configDir)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer logger.Log.Sync()

	application.Run()
}

func printStartUpBanner() {
	banner := figure.NewFigure("BioOlymp", "", true)
	banner.Print()

	fmt.Println("======================================================")
	fmt.Printf("BioOlymp trainer API (v%s)\n\n", version)
}

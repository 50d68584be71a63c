package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"catalog-sampler/config"
	"catalog-sampler/pipeline"
	"catalog-sampler/services"
	"catalog-sampler/storage"
	"catalog-sampler/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== Catalog Sampling Pipeline starting ===")
	logger.Info("Config — products: %s | reviews: %s | out: %s",
		cfg.ProductsPath, cfg.ReviewsPath, cfg.OutputDir)
	logger.Info("Config — sample: %d products, %d reviews | seed: %d",
		cfg.SampleProducts, cfg.SampleReviews, cfg.Seed)

	writer, err := storage.NewArtifactWriter(cfg.OutputDir, logger)
	if err != nil {
		logger.Error("Failed to create artifact writer: %v", err)
		os.Exit(1)
	}

	p := pipeline.New(cfg, logger, writer)
	report, err := p.Run(context.Background())
	if err != nil {
		logger.Error("Pipeline failed: %v", err)
		os.Exit(1)
	}

	summary := services.NewSummaryService(logger)
	summary.Print(report)

	fmt.Printf("  Done. Sampled %d products and %d reviews → %s\n\n",
		report.ProductsSampled, report.ReviewsSampled, report.OutputDir)
}

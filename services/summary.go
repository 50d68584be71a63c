package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"catalog-sampler/models"
	"catalog-sampler/utils"
)

// SummaryService renders the end-of-run report. Recoverable parse errors
// surface here as aggregate counts; they are never logged per line.
type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

func (s *SummaryService) Print(r *models.RunReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📦 CATALOG SAMPLING SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Pass 1 — Products\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Lines read      : \033[1m%d\033[0m\n", r.ProductLines)
	fmt.Printf("  Lines skipped   : \033[1m%d\033[0m (%.2f%%)\n", r.ProductSkipped, percent(r.ProductSkipped, r.ProductLines))
	fmt.Printf("  Records observed: \033[1m%d\033[0m\n", r.ProductObserved)
	fmt.Printf("  Products sampled: \033[1;32m%d\033[0m (%d unique keys)\n", r.ProductsSampled, r.KeyCount)
	fmt.Printf("  Duration        : %v\n", r.Pass1Duration)
	fmt.Println()

	fmt.Printf("\033[1;33m  Pass 2 — Reviews (key-filtered)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Lines read       : \033[1m%d\033[0m\n", r.ReviewLines)
	fmt.Printf("  Lines skipped    : \033[1m%d\033[0m (%.2f%%)\n", r.ReviewSkipped, percent(r.ReviewSkipped, r.ReviewLines))
	fmt.Printf("  Filtered stream  : \033[1m%d\033[0m reviews matched sampled keys\n", r.ReviewFiltered)
	fmt.Printf("  Reviews sampled  : \033[1;32m%d\033[0m\n", r.ReviewsSampled)
	fmt.Printf("  Duration         : %v\n", r.Pass2Duration)
	fmt.Println()

	fmt.Printf("\033[1;33m  Artifacts\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, name := range []string{"products_small.csv", "reviews_small.csv", "asin_sample_list.txt"} {
		fmt.Printf("  %s\n", filepath.Join(r.OutputDir, name))
	}

	if r.ProductObserved == 0 {
		s.logger.Warn("[summary] Product pass saw zero valid records")
	}
	if r.ReviewFiltered == 0 {
		s.logger.Warn("[summary] Review pass sampled nothing — no reviews matched the key set")
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"catalog-sampler/models"
	"catalog-sampler/utils"
)

// Artifact file names within the output directory. Downstream loaders
// (bulk SQL load, lexical index, embedding jobs) key on these names.
const (
	ProductsFile = "products_small.csv"
	ReviewsFile  = "reviews_small.csv"
	KeyListFile  = "asin_sample_list.txt"
)

var productHeader = []string{"asin", "title", "brand", "price", "category", "description"}

var reviewHeader = []string{"review_id", "reviewerID", "asin", "overall", "reviewText", "summary", "unixReviewTime"}

// ArtifactWriter persists the three run artifacts into one output
// directory. All artifacts are first written to temporary siblings and only
// renamed into place once every one of them is complete, so a failed run
// leaves no partial output behind.
type ArtifactWriter struct {
	dir    string
	logger *utils.Logger
}

// NewArtifactWriter creates an ArtifactWriter emitting into dir.
// Intermediate directories are created automatically.
func NewArtifactWriter(dir string, logger *utils.Logger) (*ArtifactWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifacts: create output dir: %w", err)
	}
	return &ArtifactWriter{dir: dir, logger: logger}, nil
}

// ProductsPath returns the final path of the product table artifact.
func (w *ArtifactWriter) ProductsPath() string { return filepath.Join(w.dir, ProductsFile) }

// ReviewsPath returns the final path of the review table artifact.
func (w *ArtifactWriter) ReviewsPath() string { return filepath.Join(w.dir, ReviewsFile) }

// KeyListPath returns the final path of the key list artifact.
func (w *ArtifactWriter) KeyListPath() string { return filepath.Join(w.dir, KeyListFile) }

// Emit writes all three artifacts atomically as a set.
func (w *ArtifactWriter) Emit(products []*models.Product, reviews []*models.Review, keys []string) error {
	type artifact struct {
		final string
		write func(path string) error
	}

	artifacts := []artifact{
		{w.ProductsPath(), func(p string) error { return w.writeProducts(p, products) }},
		{w.ReviewsPath(), func(p string) error { return w.writeReviews(p, reviews) }},
		{w.KeyListPath(), func(p string) error { return w.writeKeyList(p, keys) }},
	}

	temps := make([]string, 0, len(artifacts))
	discard := func() {
		for _, t := range temps {
			if err := os.Remove(t); err != nil && !os.IsNotExist(err) {
				w.logger.Warn("[artifacts] Failed to remove temp file %s: %v", t, err)
			}
		}
	}

	for _, a := range artifacts {
		tmp := a.final + ".tmp"
		if err := a.write(tmp); err != nil {
			discard()
			return err
		}
		temps = append(temps, tmp)
	}

	renamed := make([]string, 0, len(artifacts))
	for i, a := range artifacts {
		if err := os.Rename(temps[i], a.final); err != nil {
			for _, f := range renamed {
				if rmErr := os.Remove(f); rmErr != nil {
					w.logger.Warn("[artifacts] Rollback failed for %s: %v", f, rmErr)
				}
			}
			discard()
			return fmt.Errorf("artifacts: rename %q: %w", a.final, err)
		}
		renamed = append(renamed, a.final)
	}

	return nil
}

func (w *ArtifactWriter) writeProducts(path string, products []*models.Product) error {
	return w.writeCSV(path, productHeader, len(products), func(i int) []string {
		p := products[i]
		return []string{p.ASIN, p.Title, p.Brand, p.Price, p.Category, p.Description}
	})
}

func (w *ArtifactWriter) writeReviews(path string, reviews []*models.Review) error {
	return w.writeCSV(path, reviewHeader, len(reviews), func(i int) []string {
		r := reviews[i]
		return []string{
			strconv.FormatInt(r.ID, 10),
			r.ReviewerID,
			r.ASIN,
			strconv.FormatFloat(r.Overall, 'f', -1, 64),
			r.ReviewText,
			r.Summary,
			strconv.FormatInt(r.UnixReviewTime, 10),
		}
	})
}

func (w *ArtifactWriter) writeCSV(path string, header []string, rows int, row func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("artifacts: create %q: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("artifacts: write header to %q: %w", path, err)
	}
	for i := 0; i < rows; i++ {
		if err := cw.Write(row(i)); err != nil {
			f.Close()
			return fmt.Errorf("artifacts: write row to %q: %w", path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("artifacts: flush %q: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("artifacts: sync %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("artifacts: close %q: %w", path, err)
	}
	return nil
}

func (w *ArtifactWriter) writeKeyList(path string, keys []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("artifacts: create %q: %w", path, err)
	}

	for _, k := range keys {
		if _, err := f.WriteString(k + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("artifacts: write key list %q: %w", path, err)
		}
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("artifacts: sync %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("artifacts: close %q: %w", path, err)
	}
	return nil
}

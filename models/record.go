package models

import "time"

// RawRecord holds one unprocessed JSONL object exactly as decoded from the
// source stream. It is consumed immediately by the cleaner and never stored.
type RawRecord map[string]any

// First returns the value of the first key that is present and non-empty.
// Mirrors the loose multi-key lookups the raw dumps require (brand vs
// manufacturer, category vs main_cat, and so on).
func (r RawRecord) First(keys ...string) any {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t == "" {
				continue
			}
		case []any:
			if len(t) == 0 {
				continue
			}
		case map[string]any:
			if len(t) == 0 {
				continue
			}
		}
		return v
	}
	return nil
}

// Str returns the raw string value under key, or "" when absent or not a string.
func (r RawRecord) Str(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

// Product is the cleaned, validated catalog record ready for artifact emission.
type Product struct {
	ASIN        string
	Title       string
	Brand       string
	Price       string
	Category    string
	Description string
}

// Key returns the catalog identifier used to join products and reviews.
func (p *Product) Key() string { return p.ASIN }

// Review is the cleaned review record. ID is the stable row identifier
// assigned at emission time; the downstream vector index keys on it.
type Review struct {
	ID             int64
	ReviewerID     string
	ASIN           string
	Overall        float64
	ReviewText     string
	Summary        string
	UnixReviewTime int64
}

// RunReport holds the end-of-run diagnostics for one pipeline execution.
type RunReport struct {
	ProductLines    int64
	ProductSkipped  int64
	ProductObserved int64
	ProductsSampled int

	ReviewLines    int64
	ReviewSkipped  int64
	ReviewFiltered int64 // reviews whose catalog id was in the sampled key set
	ReviewsSampled int

	KeyCount  int
	OutputDir string

	Pass1Duration time.Duration
	Pass2Duration time.Duration
}

package services

import (
	"testing"

	"catalog-sampler/models"
	"catalog-sampler/utils"
)

func newTestCleaner() *Cleaner {
	return NewCleaner(utils.NewLogger(false), nil)
}

func TestCleanerProduct(t *testing.T) {
	c := newTestCleaner()

	raw := models.RawRecord{
		"asin":        "B000123",
		"title":       "<b>Nice &amp; Shiny</b>   Widget\n",
		"brand":       " Acme ",
		"price":       "$1,299.00",
		"category":    []any{"Electronics", "Widgets"},
		"description": []any{"Part one.", "<i>Part two.</i>"},
	}

	p, ok := c.Product(raw)
	if !ok {
		t.Fatal("expected product to be extracted")
	}
	if p.ASIN != "B000123" {
		t.Errorf("ASIN: got %q", p.ASIN)
	}
	if p.Title != "Nice & Shiny Widget" {
		t.Errorf("Title: got %q, want %q", p.Title, "Nice & Shiny Widget")
	}
	if p.Brand != "Acme" {
		t.Errorf("Brand: got %q, want %q", p.Brand, "Acme")
	}
	if p.Price != "1299.00" {
		t.Errorf("Price: got %q, want %q", p.Price, "1299.00")
	}
	if p.Category != "Electronics|Widgets" {
		t.Errorf("Category: got %q, want %q", p.Category, "Electronics|Widgets")
	}
	if p.Description != "Part one. Part two." {
		t.Errorf("Description: got %q, want %q", p.Description, "Part one. Part two.")
	}
}

func TestCleanerProductFallbackFields(t *testing.T) {
	c := newTestCleaner()

	raw := models.RawRecord{
		"asin":         "B000999",
		"manufacturer": "FallbackBrand",
		"main_cat":     "Garden",
		"tech1":        "tech description",
	}

	p, ok := c.Product(raw)
	if !ok {
		t.Fatal("expected product to be extracted")
	}
	if p.Brand != "FallbackBrand" {
		t.Errorf("Brand fallback: got %q", p.Brand)
	}
	if p.Category != "Garden" {
		t.Errorf("Category fallback: got %q", p.Category)
	}
	if p.Description != "tech description" {
		t.Errorf("Description fallback: got %q", p.Description)
	}
}

func TestCleanerProductRequiresASIN(t *testing.T) {
	c := newTestCleaner()

	if _, ok := c.Product(models.RawRecord{"title": "No key"}); ok {
		t.Error("expected record without asin to be rejected")
	}
	if _, ok := c.Product(models.RawRecord{"asin": "   "}); ok {
		t.Error("expected record with blank asin to be rejected")
	}
}

func TestCleanerProductCapsDescription(t *testing.T) {
	c := newTestCleaner()

	long := make([]byte, maxDescriptionLen+500)
	for i := range long {
		long[i] = 'x'
	}
	raw := models.RawRecord{"asin": "B1", "description": string(long)}

	p, _ := c.Product(raw)
	if len(p.Description) != maxDescriptionLen {
		t.Errorf("description len: got %d, want %d", len(p.Description), maxDescriptionLen)
	}
}

func TestCleanerReview(t *testing.T) {
	c := newTestCleaner()

	raw := models.RawRecord{
		"asin":           "B000123",
		"reviewerID":     "A1B2C3",
		"overall":        5.0,
		"reviewText":     "Great   product,<br/>would buy again",
		"summary":        "Five &amp; stars",
		"unixReviewTime": 1388534400.0,
	}

	rv, ok := c.Review(raw, 10)
	if !ok {
		t.Fatal("expected review to be extracted")
	}
	if rv.ReviewerID != "A1B2C3" {
		t.Errorf("ReviewerID: got %q", rv.ReviewerID)
	}
	if rv.Overall != 5.0 {
		t.Errorf("Overall: got %v, want 5", rv.Overall)
	}
	if rv.ReviewText != "Great product, would buy again" {
		t.Errorf("ReviewText: got %q", rv.ReviewText)
	}
	if rv.Summary != "Five & stars" {
		t.Errorf("Summary: got %q", rv.Summary)
	}
	if rv.UnixReviewTime != 1388534400 {
		t.Errorf("UnixReviewTime: got %d", rv.UnixReviewTime)
	}
}

func TestCleanerReviewAnonymousReviewer(t *testing.T) {
	c := newTestCleaner()

	raw := models.RawRecord{"asin": "B000123", "reviewText": "ok"}
	rv, ok := c.Review(raw, 42)
	if !ok {
		t.Fatal("expected review to be extracted")
	}
	if rv.ReviewerID != "anon_42" {
		t.Errorf("ReviewerID: got %q, want anon_42", rv.ReviewerID)
	}
}

func TestCleanerReviewRequiresASIN(t *testing.T) {
	c := newTestCleaner()
	if _, ok := c.Review(models.RawRecord{"reviewText": "orphan"}, 1); ok {
		t.Error("expected review without asin to be rejected")
	}
}

func TestCleanerNormalizeFieldList(t *testing.T) {
	// Only title is normalized; description keeps its markup, with
	// whitespace collapsed.
	c := NewCleaner(utils.NewLogger(false), []string{"title"})

	raw := models.RawRecord{
		"asin":        "B1",
		"title":       "<b>Bold</b> title",
		"description": "<i>kept</i>  markup",
	}

	p, _ := c.Product(raw)
	if p.Title != "Bold title" {
		t.Errorf("Title: got %q, want %q", p.Title, "Bold title")
	}
	if p.Description != "<i>kept</i> markup" {
		t.Errorf("Description: got %q, want %q", p.Description, "<i>kept</i> markup")
	}
}

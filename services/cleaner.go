package services

import (
	"fmt"
	"strconv"
	"strings"

	"catalog-sampler/models"
	"catalog-sampler/utils"
)

// maxDescriptionLen caps product descriptions so a single pathological
// record cannot blow up the artifact size.
const maxDescriptionLen = 32000

// DefaultNormalizeFields lists the text fields run through full markup
// stripping unless configuration narrows the set.
var DefaultNormalizeFields = []string{"title", "brand", "description", "reviewText", "summary"}

// Cleaner turns RawRecords into validated Product and Review records.
type Cleaner struct {
	logger    *utils.Logger
	normalize map[string]struct{}
}

// NewCleaner creates a Cleaner normalizing the given text fields. An empty
// list selects DefaultNormalizeFields.
func NewCleaner(logger *utils.Logger, fields []string) *Cleaner {
	if len(fields) == 0 {
		fields = DefaultNormalizeFields
	}
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[strings.TrimSpace(f)] = struct{}{}
	}
	return &Cleaner{logger: logger, normalize: set}
}

// text cleans a raw field value: full normalization when the field is in
// the configured set, whitespace collapse otherwise.
func (c *Cleaner) text(field, raw string) string {
	if _, ok := c.normalize[field]; ok {
		return Normalize(raw)
	}
	return strings.Join(strings.Fields(raw), " ")
}

// Product extracts a cleaned product from one raw catalog record. It
// returns false when the record carries no catalog identifier.
func (c *Cleaner) Product(raw models.RawRecord) (*models.Product, bool) {
	asin := strings.TrimSpace(raw.Str("asin"))
	if asin == "" {
		c.logger.Debug("[cleaner] Dropping product record without catalog id")
		return nil, false
	}

	description := c.text("description", Flatten(raw.First("description", "tech1", "feature")))
	if len(description) > maxDescriptionLen {
		description = description[:maxDescriptionLen]
	}

	return &models.Product{
		ASIN:        asin,
		Title:       c.text("title", Flatten(raw.First("title"))),
		Brand:       c.text("brand", Flatten(raw.First("brand", "manufacturer"))),
		Price:       NormalizePrice(raw.First("price")),
		Category:    NormalizeCategory(raw.First("category", "main_cat")),
		Description: description,
	}, true
}

// Review extracts a cleaned review from one raw review record. line is the
// 1-based source line number, used to synthesize a reviewer id when the
// record has none. Returns false when the record carries no catalog
// identifier.
func (c *Cleaner) Review(raw models.RawRecord, line int64) (*models.Review, bool) {
	asin := strings.TrimSpace(raw.Str("asin"))
	if asin == "" {
		c.logger.Debug("[cleaner] Dropping review record without catalog id (line %d)", line)
		return nil, false
	}

	reviewer := strings.TrimSpace(raw.Str("reviewerID"))
	if reviewer == "" {
		reviewer = fmt.Sprintf("anon_%d", line)
	}

	return &models.Review{
		ReviewerID:     reviewer,
		ASIN:           asin,
		Overall:        toFloat(raw["overall"]),
		ReviewText:     c.text("reviewText", Flatten(raw["reviewText"])),
		Summary:        c.text("summary", Flatten(raw["summary"])),
		UnixReviewTime: toInt64(raw["unixReviewTime"]),
	}, true
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

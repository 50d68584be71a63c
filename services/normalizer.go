package services

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// priceRegexp captures the first decimal number in a raw price string,
// tolerating thousands separators ("1,234.56").
var priceRegexp = regexp.MustCompile(`\d{1,3}(?:,\d{3})*(?:\.\d+)?|\d+(?:\.\d+)?`)

// Normalize cleans one raw text field: markup is stripped and entities
// decoded, runs of whitespace collapse to a single space, and the result is
// trimmed. Absent or effectively-empty input yields "". The function is
// total — malformed markup degrades to best-effort stripped text — and
// idempotent, so re-cleaning already-clean text is a no-op.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// html.Parse only fails on reader errors, which strings.Reader
		// never produces; collapse whitespace as a fallback anyway.
		return strings.Join(strings.Fields(raw), " ")
	}

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// Flatten renders a raw JSON value as a single string. Arrays (description
// and feature fields often arrive as lists) are joined with spaces.
func Flatten(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		elems := make([]string, 0, len(t))
		for _, e := range t {
			if s := Flatten(e); s != "" {
				elems = append(elems, s)
			}
		}
		return strings.Join(elems, " ")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// NormalizePrice extracts a bare numeric price from a raw value. Numbers
// pass through; strings are searched for the first decimal number with
// thousands separators removed. Unparseable strings fall back to the
// trimmed raw text.
func NormalizePrice(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		s := strings.TrimSpace(t)
		m := priceRegexp.FindString(s)
		if m == "" {
			return s
		}
		return strings.ReplaceAll(m, ",", "")
	default:
		return ""
	}
}

// NormalizeCategory renders a category value as a single pipe-separated
// string. Lists join with "|"; strings that look like serialized JSON lists
// are parsed first; anything else is trimmed and passed through.
func NormalizeCategory(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []any:
		return joinCategories(t)
	case string:
		s := strings.TrimSpace(t)
		if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
			var parsed []any
			if err := json.Unmarshal([]byte(s), &parsed); err == nil {
				return joinCategories(parsed)
			}
		}
		return s
	default:
		return Flatten(v)
	}
}

func joinCategories(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(Flatten(item))
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "|")
}

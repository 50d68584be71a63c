package services

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"<b>Nice &amp; Shiny</b>   Widget\n", "Nice & Shiny Widget"},
		{"plain text", "plain text"},
		{"  lots\t\tof\n whitespace  ", "lots of whitespace"},
		{"", ""},
		{"   \n\t ", ""},
		{"<p>first</p><p>second</p>", "first second"},
		{"<div><span>nested</span> text</div>", "nested text"},
		{"broken <b unclosed", "broken"},
		{"&lt;escaped&gt;", "<escaped>"},
		{"<script>var x = 1;</script>visible", "visible"},
	}

	for _, tt := range tests {
		got := Normalize(tt.raw)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"<b>Nice &amp; Shiny</b>   Widget\n",
		"already clean text",
		"fish & chips",
		"5 < 6 and 7 > 2",
		"",
	}

	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		raw  any
		want string
	}{
		{"$12.99", "12.99"},
		{"$1,234.56", "1234.56"},
		{"USD 99", "99"},
		{12.5, "12.5"},
		{float64(7), "7"},
		{"free shipping", "free shipping"},
		{nil, ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := NormalizePrice(tt.raw)
		if got != tt.want {
			t.Errorf("NormalizePrice(%v) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		raw  any
		want string
	}{
		{[]any{"Electronics", "Audio", "Headphones"}, "Electronics|Audio|Headphones"},
		{[]any{" Books ", "", "Fiction"}, "Books|Fiction"},
		{`["Home", "Kitchen"]`, "Home|Kitchen"},
		{"  Toys & Games ", "Toys & Games"},
		{"[not valid json", "[not valid json"},
		{nil, ""},
	}

	for _, tt := range tests {
		got := NormalizeCategory(tt.raw)
		if got != tt.want {
			t.Errorf("NormalizeCategory(%v) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		raw  any
		want string
	}{
		{"text", "text"},
		{[]any{"first", "second"}, "first second"},
		{[]any{"a", nil, "b", ""}, "a b"},
		{float64(3), "3"},
		{nil, ""},
	}

	for _, tt := range tests {
		got := Flatten(tt.raw)
		if got != tt.want {
			t.Errorf("Flatten(%v) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

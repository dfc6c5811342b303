package journal_test

import (
	"strings"
	"testing"

	"serene/internal/domain/journal"
)

func TestPost_Slug(t *testing.T) {
	p := journal.Post{Title: "Why Yin Yoga Complements a Busy Week"}
	if got := p.Slug(); got != "why-yin-yoga-complements-a-busy-week" {
		t.Errorf("Slug() = %q", got)
	}
}

func TestPost_Excerpt(t *testing.T) {
	short := journal.Post{Body: "Breathe **in**, breathe *out*."}
	if got := short.Excerpt(); got != "Breathe in, breathe out." {
		t.Errorf("short excerpt = %q", got)
	}

	long := journal.Post{Body: strings.Repeat("word ", journal.ExcerptWords+5)}
	got := long.Excerpt()
	if !strings.HasSuffix(got, "…") {
		t.Errorf("long excerpt not truncated: %q", got)
	}
	if n := len(strings.Fields(strings.TrimSuffix(got, "…"))); n != journal.ExcerptWords {
		t.Errorf("excerpt words = %d, want %d", n, journal.ExcerptWords)
	}
}

func TestBySlug(t *testing.T) {
	for _, p := range journal.Posts {
		got, ok := journal.BySlug(p.Slug())
		if !ok || got.Title != p.Title {
			t.Errorf("BySlug(%q) = %+v, %v", p.Slug(), got, ok)
		}
	}
	if _, ok := journal.BySlug("missing"); ok {
		t.Error("expected miss")
	}
}

package journal

import (
	"strings"

	"github.com/gosimple/slug"
)

// ExcerptWords is how many words a collapsed card shows.
const ExcerptWords = 30

// Post is a journal (blog) card on the home page.
type Post struct {
	Title     string
	Author    string
	Published string // YYYY-MM-DD
	Body      string // markdown
}

// Slug returns the URL-safe identifier derived from the title.
func (p Post) Slug() string {
	return slug.Make(p.Title)
}

// Excerpt returns the first ExcerptWords words of the body as plain text.
// POST: result ends with "…" when the body was truncated
func (p Post) Excerpt() string {
	words := strings.Fields(stripMarkdown(p.Body))
	if len(words) <= ExcerptWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:ExcerptWords], " ") + "…"
}

// Posts are the journal entries shown on the site, newest first.
var Posts = []Post{
	{
		Title:     "Five Breaths Before You Begin",
		Author:    "Anjali Sharma",
		Published: "2025-02-10",
		Body: `Most of us arrive on the mat carrying the whole day with us. Before the first pose, try **five slow breaths**:

1. Inhale for four counts through the nose.
2. Pause briefly at the top.
3. Exhale for six counts.

The longer exhale tells the nervous system it is safe to *soften*. Notice how the first sun salutation feels afterwards.`,
	},
	{
		Title:     "Why Yin Yoga Complements a Busy Week",
		Author:    "Priya Patel",
		Published: "2025-01-27",
		Body: `Yin asks for stillness. Poses are held for three to five minutes, which lets the deeper connective tissue respond.

If your week is full of movement, a **Yin class** is where you balance it out. Bring patience, a blanket and an open mind.`,
	},
	{
		Title:     "Props Are Not Cheating",
		Author:    "Neha Gupta",
		Published: "2025-01-13",
		Body: `Blocks, straps and bolsters bring the floor closer and let you stay in a pose with good alignment.

In *Restorative Yoga* we use them generously. Ask your teacher for a prop whenever a pose feels out of reach.`,
	},
}

// BySlug returns the post with the given slug.
func BySlug(s string) (Post, bool) {
	for _, p := range Posts {
		if p.Slug() == s {
			return p, true
		}
	}
	return Post{}, false
}

var markdownMarks = strings.NewReplacer("**", "", "*", "", "`", "", "#", "")

func stripMarkdown(md string) string {
	return markdownMarks.Replace(md)
}

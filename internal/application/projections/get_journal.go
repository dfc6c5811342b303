package projections

import "serene/internal/domain/journal"

// JournalCard is a journal post as rendered on the home page.
type JournalCard struct {
	journal.Post
	Slug     string
	Excerpt  string
	Expanded bool
}

// QueryGetJournal lists the journal cards, expanding the one whose slug matches expand.
func QueryGetJournal(expand string) []JournalCard {
	cards := make([]JournalCard, len(journal.Posts))
	for i, p := range journal.Posts {
		s := p.Slug()
		cards[i] = JournalCard{Post: p, Slug: s, Excerpt: p.Excerpt(), Expanded: s == expand}
	}
	return cards
}

// QueryGetJournalPost returns one expanded card.
func QueryGetJournalPost(slug string) (JournalCard, error) {
	p, ok := journal.BySlug(slug)
	if !ok {
		return JournalCard{}, ErrPostNotFound
	}
	return JournalCard{Post: p, Slug: slug, Excerpt: p.Excerpt(), Expanded: true}, nil
}

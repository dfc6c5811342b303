// Package share builds copy-link and social share URLs for class and journal cards.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Kind is the card type being shared.
type Kind string

// Card kinds
const (
	KindClass Kind = "class"
	KindBlog  Kind = "blog"
)

// Platform is a social network.
type Platform string

// Platforms
const (
	Facebook  Platform = "facebook"
	Twitter   Platform = "twitter"
	Instagram Platform = "instagram"
)

// Errors
var (
	// ErrManualShare means the platform has no share URL; the visitor must paste the link.
	ErrManualShare     = errors.New("platform has no share url")
	ErrUnknownPlatform = errors.New("unknown share platform")
	ErrEmptyTitle      = errors.New("share title is required")
)

// StudioName appears in share text.
const StudioName = "Serene Yoga Studio"

// ManualShareMessage is shown when ErrManualShare is returned.
const ManualShareMessage = "Copy the link and share it on Instagram!"

// ItemLink returns the deep link to a card on the site.
// PRE: origin has no trailing slash
// POST: returns origin + "#classes" or "#blog" + "?item=<escaped title>"
func ItemLink(origin string, kind Kind, title string) string {
	anchor := "#blog"
	if kind == KindClass {
		anchor = "#classes"
	}
	return strings.TrimRight(origin, "/") + anchor + "?item=" + escape(title)
}

// Text returns the share message for a card.
func Text(title string) string {
	return fmt.Sprintf("Check out %q at %s!", title, StudioName)
}

// URL returns the platform share URL for a card.
// PRE: title is non-empty
// POST: returns the share URL, or ErrManualShare for Instagram
func URL(origin string, kind Kind, title string, platform Platform) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", ErrEmptyTitle
	}
	link := ItemLink(origin, kind, title)
	switch platform {
	case Facebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + escape(link), nil
	case Twitter:
		return "https://twitter.com/intent/tweet?text=" + escape(Text(title)) + "&url=" + escape(link), nil
	case Instagram:
		return "", ErrManualShare
	}
	return "", ErrUnknownPlatform
}

// ParseKind maps a request value to a Kind; anything but "class" is a journal card.
func ParseKind(s string) Kind {
	if Kind(s) == KindClass {
		return KindClass
	}
	return KindBlog
}

// escape percent-encodes s for a URI component, spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

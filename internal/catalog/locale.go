package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Negotiator picks one of the supported locales for a request.
type Negotiator struct {
	locales []string
	matcher language.Matcher
}

// NewNegotiator builds a negotiator over locales. defaultLocale must be one
// of them and wins whenever nothing better matches.
func NewNegotiator(locales []string, defaultLocale string) (*Negotiator, error) {
	defaultLocale = strings.TrimSpace(defaultLocale)
	// The matcher falls back to its first tag, so the default goes first.
	ordered := []string{defaultLocale}
	found := false
	for _, locale := range locales {
		if locale == defaultLocale {
			found = true
			continue
		}
		ordered = append(ordered, locale)
	}
	if !found {
		return nil, fmt.Errorf("default locale %q: %w", defaultLocale, ErrNoCatalog)
	}

	tags := make([]language.Tag, 0, len(ordered))
	for _, locale := range ordered {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags = append(tags, tag)
	}
	return &Negotiator{locales: ordered, matcher: language.NewMatcher(tags)}, nil
}

// Default returns the fallback locale.
func (n *Negotiator) Default() string {
	return n.locales[0]
}

// Supported reports whether locale is served as-is.
func (n *Negotiator) Supported(locale string) bool {
	for _, l := range n.locales {
		if l == locale {
			return true
		}
	}
	return false
}

// Match returns the best supported locale for an Accept-Language header
// value. Empty or malformed headers yield the default.
func (n *Negotiator) Match(acceptLanguage string) string {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return n.Default()
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return n.Default()
	}
	_, index, confidence := n.matcher.Match(tags...)
	if confidence == language.No {
		return n.Default()
	}
	return n.locales[index]
}

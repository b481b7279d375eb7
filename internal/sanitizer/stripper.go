package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLStripperer removes markup from user supplied text.
type HTMLStripperer interface {
	StripHTML(s string) string
}

type HTMLStripper struct {
	bm *bluemonday.Policy
}

var _ HTMLStripperer = (*HTMLStripper)(nil)

// NewHTMLStripper return a new instance of blue monday policy
func NewHTMLStripper() *HTMLStripper {
	return &HTMLStripper{
		bm: bluemonday.StrictPolicy(),
	}
}

// StripHTML drops every tag and decodes the entities bluemonday escapes, so
// "Côte d'Ivoire" survives as typed. Whitespace is left alone; search terms
// match on it.
func (hs *HTMLStripper) StripHTML(s string) string {
	return html.UnescapeString(hs.bm.Sanitize(s))
}

// CollapseSpaces trims s and folds every run of whitespace into one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

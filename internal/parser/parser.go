// Package parser pulls check-in results out of the html a site returns.
package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"forum-checkin/internal/site"
	"forum-checkin/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// ErrParseMismatch means the result pattern did not occur in the page,
// usually because the site changed its markup or already checked in today.
var ErrParseMismatch = errors.New("result pattern did not match")

// Fields maps a family's field names to the captured text.
type Fields map[string]string

// Int returns a field as an integer, 0 if it is missing or not numeric.
func (f Fields) Int(name string) int {
	n, err := strconv.Atoi(f[name])
	if err != nil {
		return 0
	}
	return n
}

// Parse searches the body for the pattern and maps its capture groups, in
// order, onto the field names. It returns false when the pattern is not
// found or the group count does not line up with the names.
func Parse(body string, pattern *regexp.Regexp, names []string) (Fields, bool) {
	groups := pattern.FindStringSubmatch(body)
	if groups == nil || len(groups)-1 != len(names) {
		return nil, false
	}

	fields := make(Fields, len(names))
	for i, name := range names {
		fields[name] = groups[i+1]
	}
	return fields, true
}

// ParseSite is Parse with the pattern and schema of a site.
func ParseSite(body string, cfg site.Config) (Fields, bool) {
	return Parse(body, cfg.Regexp(), cfg.Family.Schema())
}

// the first selector with text wins
var hintSelectors = []string{
	"#messagetext",
	"div.alert_error",
	"td.embedded h2",
	"td.text",
	"title",
}

const maxHintLength = 120

// Describe returns a short, human readable message from a page that did not
// match, ex. the "already signed in" notice of a Discuz forum. It is only
// meant for logging and returns "" when nothing useful is found.
func Describe(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	for _, selector := range hintSelectors {
		text := htmlutil.CleanText(doc.Find(selector))
		if text == "" {
			continue
		}
		runes := []rune(text)
		if len(runes) > maxHintLength {
			text = string(runes[:maxHintLength]) + "…"
		}
		return text
	}
	return ""
}

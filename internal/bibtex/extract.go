// Package bibtex loads BibTeX bibliography files and normalizes their
// records into paper entries. Grammar-level parsing is delegated to
// github.com/nickng/bibtex; this package handles encodings, field-name
// variance, deduplication, and validation.
package bibtex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/haoyanli/paperflow/internal/logging"
	"github.com/haoyanli/paperflow/internal/paper"
)

// Record is one raw bibliography record: field name → value. Values
// are strings for BibTeX sources; loaders for formats that carry
// structured author lists may supply []string.
type Record map[string]any

// Candidate field names, tried in priority order. BibTeX exporters are
// inconsistent about case, so each logical field has several spellings.
var (
	titleFields  = []string{"title", "Title"}
	keyFields    = []string{"id", "ID", "key"}
	authorFields = []string{"author", "Author", "authors", "Authors"}
	yearFields   = []string{"year", "Year"}
	urlFields    = []string{"url", "URL", "Url"}
	doiFields    = []string{"doi", "DOI", "Doi"}
	fileFields   = []string{"file", "File", "FILE"}
)

// lookup returns the first present, non-empty value among the
// candidate names.
func (r Record) lookup(names []string) (any, bool) {
	for _, n := range names {
		v, ok := r[n]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if strings.TrimSpace(t) != "" {
				return t, true
			}
		case []string:
			if len(t) > 0 {
				return t, true
			}
		default:
			if v != nil {
				return v, true
			}
		}
	}
	return nil, false
}

// StringField returns the trimmed string form of the first non-empty
// candidate field, or "" when none is present.
func (r Record) StringField(names ...string) string {
	v, ok := r.lookup(names)
	if !ok {
		return ""
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// FileField returns the raw attachment field of the record, if any.
func (r Record) FileField() string {
	return r.StringField(fileFields...)
}

// Extract converts one raw record into a normalized entry. Title and
// key are required; year and url problems are logged and leave the
// field unknown/absent rather than failing the record.
func Extract(rec Record) (paper.Entry, error) {
	log := logging.NewLogger("bibtex")

	key := rec.StringField(keyFields...)
	title := rec.StringField(titleFields...)
	if title == "" {
		return paper.Entry{}, &MissingFieldError{Field: "title", Key: key}
	}
	if key == "" {
		return paper.Entry{}, &MissingFieldError{Field: "ID"}
	}

	entry := paper.Entry{Key: key, Title: title}

	if v, ok := rec.lookup(authorFields); ok {
		entry.Authors = parseAuthors(v)
	}

	if yearStr := rec.StringField(yearFields...); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		switch {
		case err != nil:
			log.Warnw("could not parse year, leaving unknown", "key", key, "year", yearStr)
		case year < paper.MinYear || year > paper.MaxYear:
			log.Warnw("year out of valid range, leaving unknown", "key", key, "year", year)
		default:
			entry.Year = year
		}
	}

	if urlStr := rec.StringField(urlFields...); urlStr != "" {
		if strings.HasPrefix(urlStr, "http://") || strings.HasPrefix(urlStr, "https://") {
			entry.URL = urlStr
		} else {
			log.Warnw("invalid url format, dropping", "key", key, "url", urlStr)
		}
	}

	entry.DOI = rec.StringField(doiFields...)

	return entry, nil
}

// parseAuthors normalizes an author value into an ordered name list.
// A pre-split list is used verbatim; a string is split on the BibTeX
// " and " separator and on commas.
func parseAuthors(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case string:
		normalized := strings.ReplaceAll(t, " and ", ", ")
		parts := strings.Split(normalized, ",")
		authors := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				authors = append(authors, p)
			}
		}
		return authors
	default:
		return nil
	}
}

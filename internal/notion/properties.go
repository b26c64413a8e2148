package notion

import (
	"strings"

	"github.com/haoyanli/paperflow/internal/paper"
)

// Properties is the Notion page properties object.
type Properties map[string]any

type selectOption struct {
	Name string `json:"name"`
}

// BuildProperties maps entry metadata to database properties: Name
// (title) and "BibTeX Key" (rich_text) are always present; Authors
// (multi_select), Year (number), and "URL/DOI" (url) only when the
// entry carries them.
func BuildProperties(entry paper.Entry) Properties {
	props := Properties{
		"Name": map[string]any{
			"title": richText(entry.Title),
		},
		"BibTeX Key": map[string]any{
			"rich_text": richText(entry.Key),
		},
	}

	if tags := authorTags(entry.Authors); len(tags) > 0 {
		props["Authors"] = map[string]any{"multi_select": tags}
	}
	if entry.YearKnown() {
		props["Year"] = map[string]any{"number": entry.Year}
	}
	if link := urlOrDOI(entry); link != "" {
		props["URL/DOI"] = map[string]any{"url": link}
	}

	return props
}

func richText(content string) []map[string]any {
	return []map[string]any{
		{"type": "text", "text": map[string]any{"content": content}},
	}
}

func authorTags(authors []string) []selectOption {
	tags := make([]selectOption, 0, len(authors))
	for _, author := range authors {
		if strings.TrimSpace(author) == "" {
			continue
		}
		tags = append(tags, selectOption{Name: author})
	}
	return tags
}

// urlOrDOI prefers the entry URL; a bare DOI is turned into a
// resolver link, while a DOI that is already a URL passes through.
func urlOrDOI(entry paper.Entry) string {
	if entry.URL != "" {
		return entry.URL
	}
	if entry.DOI == "" {
		return ""
	}
	if strings.HasPrefix(entry.DOI, "http://") || strings.HasPrefix(entry.DOI, "https://") {
		return entry.DOI
	}
	return "https://doi.org/" + entry.DOI
}

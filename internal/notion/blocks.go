// Package notion builds page payloads for and talks to the Notion API.
package notion

import (
	"encoding/json"
	"strings"

	"github.com/haoyanli/paperflow/internal/paper"
)

// TextLimit is the maximum characters per rich_text element.
const TextLimit = 2000

// Block types used for review pages.
const (
	BlockHeading    = "heading_2"
	BlockParagraph  = "paragraph"
	BlockBulletItem = "bulleted_list_item"
)

// displayTitles maps review section IDs to page headings.
var displayTitles = map[string]string{
	"summary":     "Overview",
	"novelty":     "1. Novelty & Impact",
	"methodology": "2. Methodology",
	"validation":  "3. Validation",
	"discussion":  "4. Discussion",
	"next_steps":  "5. Next Steps",
}

// Block is one Notion content block. It marshals to the type-keyed
// shape the API expects, for example:
//
//	{"type":"paragraph","paragraph":{"rich_text":[{"type":"text","text":{"content":"..."}}]}}
type Block struct {
	Type string
	Text string
}

// MarshalJSON produces the Notion API block object.
func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type": b.Type,
		b.Type: map[string]any{
			"rich_text": []map[string]any{
				{"type": "text", "text": map[string]any{"content": b.Text}},
			},
		},
	})
}

// BlocksFromReview converts a structured review into page blocks: a
// heading per non-empty section, followed by bullets when the section
// text splits into several items, or a single paragraph otherwise.
func BlocksFromReview(review paper.Review) []Block {
	var blocks []Block

	for _, section := range review.Sections() {
		items := SplitContent(section.Text)
		if len(items) == 0 {
			continue
		}

		blocks = append(blocks, Block{Type: BlockHeading, Text: truncate(displayTitles[section.ID])})

		if len(items) > 1 {
			for _, item := range items {
				blocks = append(blocks, Block{Type: BlockBulletItem, Text: truncate(item)})
			}
			continue
		}
		blocks = append(blocks, Block{Type: BlockParagraph, Text: truncate(items[0])})
	}

	return blocks
}

// SplitContent splits section text into display items. Markdown-style
// bullets ("- " or "* ") are stripped; multiple plain lines each become
// an item; a single line stays one item. Blank input yields nothing.
func SplitContent(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	isList := false
	for _, line := range lines {
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			isList = true
			break
		}
	}

	if isList {
		var items []string
		for _, line := range lines {
			item := strings.TrimLeft(line, "- ")
			item = strings.TrimLeft(item, "* ")
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			return items
		}
		return lines
	}

	if len(lines) > 1 {
		return lines
	}
	return []string{strings.TrimSpace(content)}
}

// truncate caps text at TextLimit characters (runes, so multibyte
// review text is never cut mid-character).
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= TextLimit {
		return text
	}
	return string(runes[:TextLimit])
}

package zotero

import (
	"fmt"

	"github.com/haoyanli/paperflow/internal/bibtex"
	"github.com/haoyanli/paperflow/internal/logging"
	"github.com/haoyanli/paperflow/internal/paper"
)

// Parse loads a Zotero-exported bibliography file and pairs each entry
// with the PDF referenced by its attachment field. Entries without a
// resolvable attachment are skipped with a warning; zero surviving
// pairs is a ParseError.
func Parse(path string) ([]paper.Pair, error) {
	log := logging.NewLogger("zotero")

	records, err := bibtex.LoadRecords(path)
	if err != nil {
		return nil, err
	}

	var pairs []paper.Pair
	skipped := 0

	for _, rec := range records {
		entry, err := bibtex.Extract(rec)
		if err != nil {
			log.Warnw("skipping record", "file", path, "error", err)
			skipped++
			continue
		}

		field := rec.FileField()
		if field == "" {
			log.Warnw("entry has no file field", "key", entry.Key)
			skipped++
			continue
		}

		pdfPath := ResolveAttachment(field)
		if pdfPath == "" {
			log.Warnw("no usable attachment for entry", "key", entry.Key, "field", field)
			skipped++
			continue
		}

		pair, err := paper.NewPair(entry, pdfPath)
		if err != nil {
			log.Warnw("skipping entry", "key", entry.Key, "error", err)
			skipped++
			continue
		}
		pairs = append(pairs, pair)
	}

	if len(pairs) == 0 {
		return nil, &bibtex.ParseError{
			Path: path,
			Msg:  fmt.Sprintf("no entries with usable attachments (skipped %d)", skipped),
		}
	}

	log.Infow("parsed zotero bibliography", "file", path, "pairs", len(pairs), "skipped", skipped)
	return pairs, nil
}

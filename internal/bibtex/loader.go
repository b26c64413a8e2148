package bibtex

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	nbibtex "github.com/nickng/bibtex"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/haoyanli/paperflow/internal/logging"
	"github.com/haoyanli/paperflow/internal/paper"
)

// fileEncodings is the ladder of text encodings tried when decoding a
// bibliography file. The first encoding whose decoded text parses wins.
// A nil Encoding means plain UTF-8 with validity checking.
var fileEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"utf-8", nil},
	{"latin-1", charmap.ISO8859_1},
	{"cp1252", charmap.Windows1252},
}

// Load reads and parses a bibliography file into normalized entries,
// preserving first-occurrence order. Records that fail extraction are
// skipped with a warning; an empty surviving batch is a ParseError.
func Load(path string) ([]paper.Entry, error) {
	log := logging.NewLogger("bibtex")

	records, err := LoadRecords(path)
	if err != nil {
		return nil, err
	}

	entries := make([]paper.Entry, 0, len(records))
	for _, rec := range records {
		entry, err := Extract(rec)
		if err != nil {
			log.Warnw("skipping record", "file", path, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, &ParseError{Path: path, Msg: "no valid entries"}
	}
	return entries, nil
}

// LoadRecords reads and parses a bibliography file into raw records:
// decoded under the encoding ladder, parsed with a fresh parse per
// call, and deduplicated by key (first occurrence wins).
func LoadRecords(path string) ([]Record, error) {
	log := logging.NewLogger("bibtex")

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &ParseError{Path: path, Msg: "path is not a regular file"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	bib, err := decodeAndParse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Msg: "no encoding produced a parseable file", Err: err}
	}

	return dedupe(toRecords(bib), log), nil
}

// decodeAndParse tries each encoding in order and returns the first
// successful parse. Each attempt uses a fresh parse so no state leaks
// between files or between encoding attempts.
func decodeAndParse(data []byte) (*nbibtex.BibTex, error) {
	var lastErr error
	for _, e := range fileEncodings {
		text, err := decode(data, e.enc)
		if err != nil {
			lastErr = fmt.Errorf("decoding as %s: %w", e.name, err)
			continue
		}
		bib, err := nbibtex.Parse(strings.NewReader(text))
		if err != nil {
			lastErr = fmt.Errorf("parsing as %s: %w", e.name, err)
			continue
		}
		return bib, nil
	}
	return nil, lastErr
}

func decode(data []byte, enc encoding.Encoding) (string, error) {
	if enc == nil {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid UTF-8")
		}
		return string(data), nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// toRecords flattens parsed entries into raw records, carrying the
// cite key under "id".
func toRecords(bib *nbibtex.BibTex) []Record {
	records := make([]Record, 0, len(bib.Entries))
	for _, e := range bib.Entries {
		rec := make(Record, len(e.Fields)+1)
		for name, value := range e.Fields {
			rec[name] = value.String()
		}
		if e.CiteName != "" {
			rec["id"] = e.CiteName
		}
		records = append(records, rec)
	}
	return records
}

// dedupe drops records whose key was already seen, keeping the first
// occurrence. Records without any key are kept as-is.
func dedupe(records []Record, log *zap.SugaredLogger) []Record {
	seen := make(map[string]bool, len(records))
	unique := make([]Record, 0, len(records))
	for _, rec := range records {
		key := rec.StringField(keyFields...)
		if key == "" {
			unique = append(unique, rec)
			continue
		}
		if seen[key] {
			log.Warnw("duplicate key, keeping first occurrence", "key", key)
			continue
		}
		seen[key] = true
		unique = append(unique, rec)
	}
	return unique
}

// Package paper defines the core domain types for the review pipeline.
package paper

import (
	"fmt"
	"os"
)

// Year bounds for a usable publication year. Values outside this range
// are treated as unknown rather than rejected.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Entry is one normalized bibliography record.
type Entry struct {
	Key     string   // citation key, unique within one source file
	Title   string   // paper title, never empty
	Authors []string // ordered author names, may be empty
	Year    int      // publication year, 0 when unknown
	URL     string   // http/https URL, empty when absent
	DOI     string   // raw DOI string, empty when absent
}

// YearKnown reports whether the entry carries a usable publication year.
func (e Entry) YearKnown() bool {
	return e.Year != 0
}

// Pair binds one bibliography entry to one verified PDF file.
type Pair struct {
	Entry   Entry
	PDFPath string
}

// NewPair creates a Pair after verifying that the PDF path exists and
// is a regular file.
func NewPair(entry Entry, pdfPath string) (Pair, error) {
	info, err := os.Stat(pdfPath)
	if err != nil {
		return Pair{}, fmt.Errorf("PDF file does not exist: %s", pdfPath)
	}
	if !info.Mode().IsRegular() {
		return Pair{}, fmt.Errorf("PDF path is not a regular file: %s", pdfPath)
	}
	return Pair{Entry: entry, PDFPath: pdfPath}, nil
}

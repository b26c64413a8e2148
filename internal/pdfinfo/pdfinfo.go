// Package pdfinfo probes PDF files for display and sanity checking.
package pdfinfo

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageCount opens the file as a PDF and returns its page count. An
// unreadable or non-PDF file is an error; callers treat that as
// "unknown" rather than fatal.
func PageCount(path string) (n int, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading PDF %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()
	return r.NumPage(), nil
}

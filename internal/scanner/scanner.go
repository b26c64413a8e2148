// Package scanner walks directories to pair bibliography files with
// the PDFs they describe.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/haoyanli/paperflow/internal/bibtex"
	"github.com/haoyanli/paperflow/internal/logging"
	"github.com/haoyanli/paperflow/internal/paper"
)

// Scan pairs bibliography entries with PDFs under dir. When dir holds
// a bibliography file and a PDF, at least one of them at the top
// level, it is treated as a single paper directory; otherwise each
// immediate subdirectory (in sorted order) is scanned, and a
// subdirectory whose bibliography fails to parse is skipped with a
// warning rather than failing the batch.
func Scan(dir string) ([]paper.Pair, error) {
	log := logging.NewLogger("scanner")

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	// Single-paper mode needs both files somewhere under dir, with at
	// least one of them directly in dir. A purely recursive check would
	// classify a root of per-paper subdirectories as one paper directory
	// and pair every entry with the first PDF found.
	if isPaperDir(dir) {
		log.Infow("processing directory", "dir", dir)
		return ScanSingle(dir)
	}

	log.Infow("scanning subdirectories", "dir", dir)
	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var pairs []paper.Pair
	for _, child := range children {
		if !child.IsDir() {
			continue
		}
		subdir := filepath.Join(dir, child.Name())
		subPairs, err := ScanSingle(subdir)
		if err != nil {
			log.Warnw("skipping directory", "dir", subdir, "error", err)
			continue
		}
		pairs = append(pairs, subPairs...)
	}

	log.Infow("scan complete", "dir", dir, "pairs", len(pairs))
	return pairs, nil
}

// ScanSingle pairs the bibliography entries found under dir with its
// PDF. Both searches are recursive. A missing bibliography or PDF
// yields an empty result; a bibliography parse failure propagates.
// Every entry in a multi-entry bibliography binds to the same PDF.
func ScanSingle(dir string) ([]paper.Pair, error) {
	log := logging.NewLogger("scanner")

	bibFile := findOne(dir, ".bib", "bibliography")
	if bibFile == "" {
		log.Debugw("no bibliography file found", "dir", dir)
		return nil, nil
	}
	pdfFile := findOne(dir, ".pdf", "PDF")
	if pdfFile == "" {
		log.Warnw("no PDF file found", "dir", dir)
		return nil, nil
	}

	entries, err := bibtex.Load(bibFile)
	if err != nil {
		return nil, err
	}

	if len(entries) > 1 {
		// Likely an export mistake: N entries all bind to one PDF.
		log.Warnw("multiple entries share a single PDF", "file", bibFile, "entries", len(entries), "pdf", pdfFile)
	}

	pairs := make([]paper.Pair, 0, len(entries))
	for _, entry := range entries {
		pair, err := paper.NewPair(entry, pdfFile)
		if err != nil {
			log.Warnw("skipping entry", "key", entry.Key, "error", err)
			continue
		}
		pairs = append(pairs, pair)
	}

	log.Infow("paired entries with PDF", "dir", dir, "pairs", len(pairs))
	return pairs, nil
}

// findOne returns the first file under dir with the given extension,
// logging when several candidates exist.
func findOne(dir, ext, kind string) string {
	matches := findByExt(dir, ext)
	if len(matches) == 0 {
		return ""
	}
	if len(matches) > 1 {
		logging.NewLogger("scanner").Warnw("multiple files found, using first",
			"kind", kind, "dir", dir, "count", len(matches), "using", matches[0])
	}
	return matches[0]
}

// isPaperDir reports whether dir holds one paper: a bibliography file
// and a PDF both exist somewhere under it, and at least one of the two
// sits directly in it. Either file may be nested, as when the PDF
// lives in a files/ subdirectory next to the bibliography.
func isPaperDir(dir string) bool {
	if !hasDirectFile(dir, ".bib") && !hasDirectFile(dir, ".pdf") {
		return false
	}
	return len(findByExt(dir, ".bib")) > 0 && len(findByExt(dir, ".pdf")) > 0
}

// hasDirectFile reports whether dir itself (not its subdirectories)
// holds a regular file with the given extension.
func hasDirectFile(dir, ext string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ext) {
			return true
		}
	}
	return false
}

// findByExt walks dir and returns all regular files whose extension
// matches ext (case-insensitive), in deterministic walk order.
func findByExt(dir, ext string) []string {
	var matches []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.Type().IsRegular() && strings.EqualFold(filepath.Ext(path), ext) {
			matches = append(matches, path)
		}
		return nil
	})
	return matches
}

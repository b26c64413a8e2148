package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

const validBib = `@article{test2024,
  title = {A Test Paper},
  author = {John Doe},
  year = {2024}
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanSingleDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "paper.bib"), validBib)
	writeFile(t, filepath.Join(dir, "paper.pdf"), "%PDF-1.4")

	pairs, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1", len(pairs))
	}
	if pairs[0].Entry.Key != "test2024" {
		t.Errorf("Key = %q, want test2024", pairs[0].Entry.Key)
	}
	if filepath.Base(pairs[0].PDFPath) != "paper.pdf" {
		t.Errorf("PDFPath = %q, want paper.pdf", pairs[0].PDFPath)
	}
}

func TestScanBibDirectPDFNested(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "paper.bib"), validBib)
	writeFile(t, filepath.Join(dir, "files", "paper.pdf"), "%PDF-1.4")

	pairs, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1 (bibliography in root, PDF nested)", len(pairs))
	}
	if pairs[0].Entry.Key != "test2024" {
		t.Errorf("Key = %q, want test2024", pairs[0].Entry.Key)
	}
}

func TestScanPDFDirectBibNested(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "refs", "paper.bib"), validBib)
	writeFile(t, filepath.Join(dir, "paper.pdf"), "%PDF-1.4")

	pairs, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1 (PDF in root, bibliography nested)", len(pairs))
	}
}

func TestScanSubdirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "paper.bib"), validBib)
	writeFile(t, filepath.Join(dir, "a", "paper.pdf"), "%PDF-1.4")
	writeFile(t, filepath.Join(dir, "b", "other.bib"), `@article{other2023,
  title = {Other Paper}
}
`)
	writeFile(t, filepath.Join(dir, "b", "other.pdf"), "%PDF-1.4")
	// A loose file at the top level is ignored in subdirectory mode.
	writeFile(t, filepath.Join(dir, "notes.txt"), "notes")

	pairs, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("Scan() returned %d pairs, want 2", len(pairs))
	}
	// ReadDir sorts children, so a comes before b.
	if pairs[0].Entry.Key != "test2024" || pairs[1].Entry.Key != "other2023" {
		t.Errorf("keys = %q, %q", pairs[0].Entry.Key, pairs[1].Entry.Key)
	}
}

func TestScanSkipsBadSubdirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good", "paper.bib"), validBib)
	writeFile(t, filepath.Join(dir, "good", "paper.pdf"), "%PDF-1.4")
	writeFile(t, filepath.Join(dir, "bad", "broken.bib"), "@article{broken,\n  title = {\xff")
	writeFile(t, filepath.Join(dir, "bad", "broken.pdf"), "%PDF-1.4")

	pairs, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("Scan() returned %d pairs, want 1 (bad subdirectory skipped)", len(pairs))
	}
	if pairs[0].Entry.Key != "test2024" {
		t.Errorf("Key = %q, want test2024", pairs[0].Entry.Key)
	}
}

func TestScanMissingDirectory(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("Scan() expected error for missing directory")
	}
}

func TestScanNotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, path, "x")
	if _, err := Scan(path); err == nil {
		t.Fatal("Scan() expected error for non-directory path")
	}
}

func TestScanSingleNoPDF(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "paper.bib"), validBib)

	pairs, err := ScanSingle(dir)
	if err != nil {
		t.Fatalf("ScanSingle() error = %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("ScanSingle() returned %d pairs, want 0", len(pairs))
	}
}

func TestScanSingleMultiplePDFsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "paper.bib"), validBib)
	writeFile(t, filepath.Join(dir, "a.pdf"), "%PDF-1.4")
	writeFile(t, filepath.Join(dir, "b.pdf"), "%PDF-1.4")

	pairs, err := ScanSingle(dir)
	if err != nil {
		t.Fatalf("ScanSingle() error = %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("ScanSingle() returned %d pairs, want 1", len(pairs))
	}
	if filepath.Base(pairs[0].PDFPath) != "a.pdf" {
		t.Errorf("PDFPath = %q, want first file in walk order", pairs[0].PDFPath)
	}
}

func TestScanSingleMultipleEntriesShareOnePDF(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "paper.bib"), validBib+`
@article{second2023,
  title = {Second Paper}
}
`)
	writeFile(t, filepath.Join(dir, "paper.pdf"), "%PDF-1.4")

	pairs, err := ScanSingle(dir)
	if err != nil {
		t.Fatalf("ScanSingle() error = %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("ScanSingle() returned %d pairs, want 2", len(pairs))
	}
	if pairs[0].PDFPath != pairs[1].PDFPath {
		t.Error("entries should share the single PDF")
	}
}

func TestScanSingleNestedPDF(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "paper.bib"), validBib)
	writeFile(t, filepath.Join(dir, "files", "paper.PDF"), "%PDF-1.4")

	pairs, err := ScanSingle(dir)
	if err != nil {
		t.Fatalf("ScanSingle() error = %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("ScanSingle() returned %d pairs, want 1 (recursive, case-insensitive search)", len(pairs))
	}
}

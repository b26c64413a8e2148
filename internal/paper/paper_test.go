package paper

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPair(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "paper.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	entry := Entry{Key: "test2024", Title: "A Test Paper"}

	pair, err := NewPair(entry, pdfPath)
	if err != nil {
		t.Fatalf("NewPair() error = %v", err)
	}
	if pair.PDFPath != pdfPath {
		t.Errorf("PDFPath = %q, want %q", pair.PDFPath, pdfPath)
	}
	if pair.Entry.Key != "test2024" {
		t.Errorf("Entry.Key = %q, want test2024", pair.Entry.Key)
	}
}

func TestNewPairMissingPDF(t *testing.T) {
	_, err := NewPair(Entry{Key: "k", Title: "T"}, filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Fatal("NewPair() expected error for missing PDF")
	}
}

func TestNewPairDirectory(t *testing.T) {
	_, err := NewPair(Entry{Key: "k", Title: "T"}, t.TempDir())
	if err == nil {
		t.Fatal("NewPair() expected error for directory path")
	}
}

func TestYearKnown(t *testing.T) {
	if (Entry{Year: 0}).YearKnown() {
		t.Error("YearKnown() = true for zero year")
	}
	if !(Entry{Year: 2024}).YearKnown() {
		t.Error("YearKnown() = false for 2024")
	}
}

func TestReviewSections(t *testing.T) {
	review := Review{
		Summary:     "s",
		Novelty:     "n",
		Methodology: "m",
		Validation:  "v",
		Discussion:  "d",
		NextSteps:   "x",
	}

	sections := review.Sections()
	wantIDs := []string{"summary", "novelty", "methodology", "validation", "discussion", "next_steps"}
	wantText := []string{"s", "n", "m", "v", "d", "x"}

	if len(sections) != len(wantIDs) {
		t.Fatalf("Sections() returned %d sections, want %d", len(sections), len(wantIDs))
	}
	for i, s := range sections {
		if s.ID != wantIDs[i] {
			t.Errorf("section %d ID = %q, want %q", i, s.ID, wantIDs[i])
		}
		if s.Text != wantText[i] {
			t.Errorf("section %d Text = %q, want %q", i, s.Text, wantText[i])
		}
	}
}

package runlog

import (
	"path/filepath"
	"testing"
)

func TestRecordAndRecent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	outcomes := []Outcome{
		{BibKey: "a2024", Title: "First", Status: StatusSuccess, PageID: "page-1"},
		{BibKey: "b2024", Title: "Second", Status: StatusFailed, Error: "upload failed"},
	}
	for _, o := range outcomes {
		if err := db.Record(o); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent() returned %d outcomes, want 2", len(got))
	}

	// Newest first.
	if got[0].BibKey != "b2024" || got[1].BibKey != "a2024" {
		t.Errorf("order = %q, %q, want newest first", got[0].BibKey, got[1].BibKey)
	}
	if got[0].Status != StatusFailed || got[0].Error != "upload failed" {
		t.Errorf("failed outcome = %+v", got[0])
	}
	if got[1].PageID != "page-1" {
		t.Errorf("PageID = %q, want page-1", got[1].PageID)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not recorded")
	}
}

func TestRecentLimit(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for i := 0; i < 5; i++ {
		if err := db.Record(Outcome{BibKey: "k", Title: "T", Status: StatusSuccess}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := db.Recent(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("Recent(3) returned %d outcomes", len(got))
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	db.Close()
}

func TestRecentEmpty(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	got, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent() = %v, want empty", got)
	}
}

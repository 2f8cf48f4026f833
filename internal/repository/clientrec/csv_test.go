package clientrec

import (
	"io"
	"log"
	"reflect"
	"testing"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestCSV_SaveLoadRoundTrip(t *testing.T) {
	repo := NewCSV(t.TempDir(), logDiscard())

	rec := Record{
		Username:   "Steve",
		Name:       "Steve Jones",
		CartKeys:   []string{"Northline Parka", "Soundform Mini Speaker"},
		CartCounts: []int{2, 1},
		Saved:      []string{"Harbor Good Mug"},
	}
	if err := repo.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	records, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !reflect.DeepEqual(records[0], rec) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", records[0], rec)
	}
}

func TestCSV_SaveIsFullOverwrite(t *testing.T) {
	repo := NewCSV(t.TempDir(), logDiscard())

	first := Record{
		Username:   "Nora",
		Name:       "Nora",
		CartKeys:   []string{"a", "b"},
		CartCounts: []int{1, 2},
		Saved:      []string{"c"},
	}
	if err := repo.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Empty cart and saved set must replace the previous state entirely.
	second := Record{Username: "Nora", Name: "Nora"}
	if err := repo.Save(second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	records, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if len(got.CartKeys) != 0 || len(got.CartCounts) != 0 || len(got.Saved) != 0 {
		t.Fatalf("expected empty state after overwrite, got %+v", got)
	}
	if got.Name != "Nora" {
		t.Fatalf("expected display name preserved, got %q", got.Name)
	}
}

func TestCSV_LoadAllMissingDir(t *testing.T) {
	repo := NewCSV(t.TempDir()+"/missing", logDiscard())

	records, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if records != nil {
		t.Fatalf("expected no records, got %v", records)
	}
}

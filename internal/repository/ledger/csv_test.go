package ledger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestCSV_AppendLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	repo := NewCSV(path, logDiscard())

	first := Record{
		Number:     0,
		Username:   "Steve",
		ItemKeys:   []string{"Northline Parka", "Wireless Earbuds"},
		Counts:     []int{1, 2},
		TotalCents: 26997,
		CreditCard: "4111111111111111",
		Address:    "12 Harbor St",
	}
	second := Record{
		Number:     1,
		Username:   "Nora",
		TotalCents: 0,
	}
	if err := repo.Append(first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append(second); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !reflect.DeepEqual(records[0], first) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", records[0], first)
	}
	if records[1].Number != 1 || records[1].Username != "Nora" {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
	if len(records[1].ItemKeys) != 0 || len(records[1].Counts) != 0 {
		t.Fatalf("expected empty order list, got %+v", records[1])
	}
}

func TestCSV_LoadAllSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	repo := NewCSV(path, logDiscard())

	if err := repo.Append(Record{Number: 3, Username: "Steve", TotalCents: 100}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("notanumber,Steve,,,-,x,y\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	records, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(records) != 1 || records[0].Number != 3 {
		t.Fatalf("expected only the valid record, got %+v", records)
	}
}

func TestCSV_LoadAllMissingFile(t *testing.T) {
	repo := NewCSV(filepath.Join(t.TempDir(), "orders.csv"), logDiscard())

	records, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if records != nil {
		t.Fatalf("expected empty ledger, got %v", records)
	}
}

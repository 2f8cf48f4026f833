package account

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCSV_LoadMissingFile(t *testing.T) {
	repo := NewCSV(filepath.Join(t.TempDir(), "logins.csv"))

	accounts, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(accounts) != 0 {
		t.Fatalf("expected empty store, got %v", accounts)
	}
}

func TestCSV_AppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logins.csv")
	repo := NewCSV(path)

	if err := repo.Append("Nora", "pw"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append("Raj", "secret"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	accounts, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts["Nora"] != "pw" || accounts["Raj"] != "secret" {
		t.Fatalf("unexpected accounts: %v", accounts)
	}

	// The header is written once, on file creation, and appends never
	// rewrite prior content.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Username,Password" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "Nora,pw" {
		t.Fatalf("expected first append preserved, got %q", lines[1])
	}
}

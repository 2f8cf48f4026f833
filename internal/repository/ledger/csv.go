package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
)

type csvRepo struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

// NewCSV returns a Repository backed by a single ledger file. A missing
// file is an empty ledger and is created on first append.
func NewCSV(path string, logger *log.Logger) Repository {
	return &csvRepo{path: path, logger: logger}
}

func (r *csvRepo) LoadAll() ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse ledger file: %w", err)
	}

	var records []Record
	for i, row := range rows {
		rec, err := recordFromRow(row)
		if err != nil {
			r.logger.Printf("skipping ledger row %d: %v", i+1, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *csvRepo) Append(rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	counts := make([]string, len(rec.Counts))
	for i, count := range rec.Counts {
		counts[i] = strconv.Itoa(count)
	}

	w := csv.NewWriter(f)
	row := []string{
		strconv.FormatInt(rec.Number, 10),
		rec.Username,
		strings.Join(rec.ItemKeys, ","),
		strings.Join(counts, ","),
		strconv.FormatInt(rec.TotalCents, 10),
		rec.CreditCard,
		rec.Address,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write purchase: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger file: %w", err)
	}
	return nil
}

func recordFromRow(row []string) (Record, error) {
	if len(row) < 7 {
		return Record{}, fmt.Errorf("expected 7 fields, got %d", len(row))
	}
	number, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("parse order number %q: %w", row[0], err)
	}
	if number < 0 {
		return Record{}, fmt.Errorf("negative order number %d", number)
	}
	total, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("parse total %q: %w", row[4], err)
	}

	var counts []int
	for _, field := range splitJoined(row[3]) {
		count, err := strconv.Atoi(field)
		if err != nil {
			return Record{}, fmt.Errorf("parse count %q: %w", field, err)
		}
		counts = append(counts, count)
	}

	return Record{
		Number:     number,
		Username:   row[1],
		ItemKeys:   splitJoined(row[2]),
		Counts:     counts,
		TotalCents: total,
		CreditCard: row[5],
		Address:    row[6],
	}, nil
}

func splitJoined(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

package clientrec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Row tags keep the four record rows self-describing and stop encoding/csv
// from swallowing rows that would otherwise be blank.
const (
	tagName       = "name"
	tagCartItems  = "cart_items"
	tagCartCounts = "cart_counts"
	tagSaved      = "saved"
)

type csvRepo struct {
	dir    string
	logger *log.Logger
}

// NewCSV returns a Repository that keeps one <username>.csv file per client
// under dir. The directory is created on demand.
func NewCSV(dir string, logger *log.Logger) Repository {
	return &csvRepo{dir: dir, logger: logger}
}

func (r *csvRepo) LoadAll() ([]Record, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read clients dir: %w", err)
	}

	var records []Record
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		username := strings.TrimSuffix(name, ".csv")
		rec, err := r.loadOne(filepath.Join(r.dir, name), username)
		if err != nil {
			r.logger.Printf("skipping client record %s: %v", username, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *csvRepo) loadOne(path, username string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return Record{}, fmt.Errorf("parse: %w", err)
	}

	rec := Record{Username: username}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		switch row[0] {
		case tagName:
			if len(row) > 1 {
				rec.Name = row[1]
			}
		case tagCartItems:
			rec.CartKeys = nonEmpty(row[1:])
		case tagCartCounts:
			for _, field := range nonEmpty(row[1:]) {
				count, err := strconv.Atoi(field)
				if err != nil {
					return Record{}, fmt.Errorf("parse cart count %q: %w", field, err)
				}
				rec.CartCounts = append(rec.CartCounts, count)
			}
		case tagSaved:
			rec.Saved = nonEmpty(row[1:])
		}
	}
	return rec, nil
}

func (r *csvRepo) Save(rec Record) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create clients dir: %w", err)
	}

	f, err := os.Create(filepath.Join(r.dir, rec.Username+".csv"))
	if err != nil {
		return fmt.Errorf("create client record: %w", err)
	}
	defer f.Close()

	counts := make([]string, len(rec.CartCounts))
	for i, count := range rec.CartCounts {
		counts[i] = strconv.Itoa(count)
	}

	w := csv.NewWriter(f)
	rows := [][]string{
		append([]string{tagName}, rec.Name),
		append([]string{tagCartItems}, rec.CartKeys...),
		append([]string{tagCartCounts}, counts...),
		append([]string{tagSaved}, rec.Saved...),
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write client record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush client record: %w", err)
	}
	return nil
}

func nonEmpty(fields []string) []string {
	var out []string
	for _, field := range fields {
		if field != "" {
			out = append(out, field)
		}
	}
	return out
}

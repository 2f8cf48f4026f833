package catalog

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

// Column layout of a department file. The first row is a header and is
// skipped.
const (
	colName = iota
	colPrice
	colImageURLs
	colDescription
	colCategory
	colBrand
	colColors
	colSizes
	colCount
)

// Catalog is the immutable-after-load item lookup table, keyed by item
// identity string.
type Catalog struct {
	items       map[string]*domain.Item
	departments []string
}

// Load reads every .csv file in dir as one department and builds the lookup
// table. Rows that cannot be parsed are logged and skipped; a department
// file that cannot be opened fails the load.
func Load(dir string, logger *log.Logger) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read departments dir: %w", err)
	}

	c := &Catalog{items: make(map[string]*domain.Item)}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		dept := strings.TrimSuffix(name, ".csv")
		if err := c.loadDepartment(filepath.Join(dir, name), dept, logger); err != nil {
			return nil, fmt.Errorf("load department %s: %w", dept, err)
		}
		c.departments = append(c.departments, dept)
	}
	sort.Strings(c.departments)

	return c, nil
}

func (c *Catalog) loadDepartment(path, dept string, logger *log.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may have trailing commas

	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("parse csv: %w", err)
	}

	for i, record := range records {
		if i == 0 {
			continue // header
		}
		item, err := itemFromRecord(dept, record)
		if err != nil {
			logger.Printf("skipping %s row %d: %v", dept, i+1, err)
			continue
		}
		c.items[item.Key()] = item
	}
	return nil
}

func itemFromRecord(dept string, record []string) (*domain.Item, error) {
	if len(record) < colCount {
		return nil, fmt.Errorf("expected %d fields, got %d", colCount, len(record))
	}
	name := strings.TrimSpace(record[colName])
	if name == "" {
		return nil, fmt.Errorf("empty item name")
	}
	cents, err := parsePrice(record[colPrice])
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", record[colPrice], err)
	}
	return &domain.Item{
		Department:  dept,
		Name:        name,
		PriceCents:  cents,
		ImageURLs:   splitList(record[colImageURLs]),
		Description: strings.TrimSpace(record[colDescription]),
		Category:    strings.TrimSpace(record[colCategory]),
		Brand:       strings.TrimSpace(record[colBrand]),
		Colors:      splitList(record[colColors]),
		Sizes:       splitList(record[colSizes]),
	}, nil
}

// Lookup resolves an item key to its catalog entry.
func (c *Catalog) Lookup(key string) (*domain.Item, bool) {
	item, ok := c.items[key]
	return item, ok
}

// Departments lists the loaded department names.
func (c *Catalog) Departments() []string {
	return c.departments
}

// Len reports the number of loaded items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// parsePrice converts a currency-prefixed decimal string such as "$49.99"
// to integer cents.
func parsePrice(s string) (int64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("negative price")
	}
	return int64(math.Round(f * 100)), nil
}

// splitList splits a comma-joined multi-value field, dropping empties.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

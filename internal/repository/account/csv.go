package account

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

var header = []string{"Username", "Password"}

type csvRepo struct {
	mu   sync.Mutex
	path string
}

// NewCSV returns a Repository backed by a single credentials file. A
// missing file is treated as an empty store and created on first append.
func NewCSV(path string) Repository {
	return &csvRepo{path: path}
}

func (r *csvRepo) Load() (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open credentials file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}

	accounts := make(map[string]string, len(records))
	for i, record := range records {
		if i == 0 && len(record) > 0 && record[0] == header[0] {
			continue
		}
		if len(record) < 2 || record[0] == "" {
			continue
		}
		accounts[record[0]] = record[1]
	}
	return accounts, nil
}

func (r *csvRepo) Append(username, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, statErr := os.Stat(r.path)
	fresh := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open credentials file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write([]string{username, password}); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush credentials file: %w", err)
	}
	return nil
}

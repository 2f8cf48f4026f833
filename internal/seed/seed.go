package seed

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

var departmentHeader = []string{
	"Name", "Price", "ImageURLs", "Description", "Category", "Brand", "Colors", "Sizes",
}

var departments = map[string][][]string{
	"clothing": {
		{"Crewneck Tee", "$19.99", "https://img.example.com/tee.png", "Soft cotton tee", "tops", "Northline", "black,white,navy", "S,M,L,XL"},
		{"Northline Parka", "$149.99", "https://img.example.com/parka.png", "Insulated winter parka", "outerwear", "Northline", "green,black", "M,L,XL"},
		{"Slim Chinos", "$44.50", "https://img.example.com/chinos.png", "Stretch twill chinos", "bottoms", "Harbor & Co", "khaki,olive", "30,32,34,36"},
	},
	"electronics": {
		{"Wireless Earbuds", "$59.99", "https://img.example.com/earbuds.png", "Bluetooth earbuds with case", "audio", "Soundform", "white,black", ""},
		{"Soundform Mini Speaker", "$34.99", "https://img.example.com/speaker.png", "Pocket-size speaker", "audio", "Soundform", "blue,black", ""},
	},
}

// Apply writes sample department files for manual testing. It overwrites
// existing sample files but leaves other data alone.
func Apply(departmentsDir string) error {
	if err := os.MkdirAll(departmentsDir, 0o755); err != nil {
		return fmt.Errorf("create departments dir: %w", err)
	}

	for dept, rows := range departments {
		if err := writeDepartment(filepath.Join(departmentsDir, dept+".csv"), rows); err != nil {
			return fmt.Errorf("write department %s: %w", dept, err)
		}
	}
	return nil
}

func writeDepartment(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(departmentHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

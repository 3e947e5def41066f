package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/palletlabel/internal/model"
)

// OutputDir returns the directory that receives a delivery's documents.
func OutputDir(root, deliveryNumber string) string {
	return filepath.Join(root, deliveryNumber)
}

// PalletPath returns the document path for one pallet inside dir.
func PalletPath(dir, palletNumber string) string {
	return filepath.Join(dir, palletNumber+".pdf")
}

// EnsureOutputDir creates dir and any missing parents. Existing
// directories are left as they are.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return model.IOError("create output directory", err)
	}
	return nil
}

// checkFileNames rejects pallet numbers that cannot name a file.
func checkFileNames(groups []model.PalletGroup) error {
	for _, g := range groups {
		if !model.IsSafeFileName(g.PalletNumber) {
			return model.InputError("name pallet documents", "pallet number %q cannot be used as a file name", g.PalletNumber)
		}
	}
	return nil
}

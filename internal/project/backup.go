package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/palletlabel/internal/model"
)

// SettingsBackupVersion is written into every exported settings file.
const SettingsBackupVersion = "1.0.0"

// SettingsBackup is the file format used to move option lists and
// preferences between workstations.
type SettingsBackup struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
}

// ExportSettings writes config to exportPath as a settings backup.
func ExportSettings(exportPath string, config model.AppConfig) error {
	backup := SettingsBackup{
		Version:   SettingsBackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return model.IOError("export settings", err)
	}
	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return model.IOError("export settings", err)
	}
	return nil
}

// ImportSettings reads a settings backup. The returned config is
// normalized; the caller decides whether to apply and save it.
func ImportSettings(importPath string) (SettingsBackup, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return SettingsBackup{}, model.IOError("import settings", err)
	}
	var backup SettingsBackup
	if err := json.Unmarshal(data, &backup); err != nil {
		return SettingsBackup{}, model.InputError("import settings", "invalid settings file: %v", err)
	}
	if backup.Version == "" {
		return SettingsBackup{}, model.InputError("import settings", "invalid settings file: missing version field")
	}
	backup.Config.Normalize()
	return backup, nil
}

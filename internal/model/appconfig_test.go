package model

import "testing"

func TestDefaultAppConfigHasOptions(t *testing.T) {
	cfg := DefaultAppConfig()

	if len(cfg.Destinations) != 2 {
		t.Errorf("expected 2 destinations, got %d", len(cfg.Destinations))
	}
	if len(cfg.DeliveryTypes) != 1 {
		t.Errorf("expected 1 delivery type, got %d", len(cfg.DeliveryTypes))
	}
	if len(cfg.Companies) != 2 {
		t.Errorf("expected 2 companies, got %d", len(cfg.Companies))
	}
	if cfg.Language != LanguageRussian {
		t.Errorf("expected default language ru, got %s", cfg.Language)
	}
	if cfg.OutputRoot != "." {
		t.Errorf("expected output root '.', got %q", cfg.OutputRoot)
	}
	if cfg.StopOnFirstError {
		t.Error("expected per-pallet failure isolation by default")
	}
}

func TestNormalizeFillsMissingFields(t *testing.T) {
	cfg := AppConfig{
		Companies: []string{"ООО Ромашка"},
		Language:  "de",
	}
	cfg.Normalize()

	if len(cfg.Destinations) == 0 {
		t.Error("destinations should be filled from defaults")
	}
	if len(cfg.DeliveryTypes) == 0 {
		t.Error("delivery types should be filled from defaults")
	}
	if len(cfg.Companies) != 1 || cfg.Companies[0] != "ООО Ромашка" {
		t.Errorf("companies should be kept, got %v", cfg.Companies)
	}
	if cfg.Language != LanguageRussian {
		t.Errorf("unsupported language should fall back to ru, got %s", cfg.Language)
	}
	if cfg.OutputRoot != "." {
		t.Errorf("expected output root '.', got %q", cfg.OutputRoot)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme 'system', got %q", cfg.Theme)
	}
}

func TestNormalizeKeepsEnglish(t *testing.T) {
	cfg := AppConfig{Language: LanguageEnglish, OutputRoot: "/srv/labels"}
	cfg.Normalize()

	if cfg.Language != LanguageEnglish {
		t.Errorf("expected en, got %s", cfg.Language)
	}
	if cfg.OutputRoot != "/srv/labels" {
		t.Errorf("expected output root to be kept, got %q", cfg.OutputRoot)
	}
}

func TestNormalizeKeepsDarkTheme(t *testing.T) {
	cfg := AppConfig{Theme: "dark"}
	cfg.Normalize()

	if cfg.Theme != "dark" {
		t.Errorf("expected dark theme to be kept, got %q", cfg.Theme)
	}
}

package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigLoaderDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	loader := NewConfigLoader(dir)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load with no config file: %v", err)
	}
	want := DefaultAppConfig()
	if cfg.DataFile != want.DataFile {
		t.Errorf("DataFile = %q, want %q", cfg.DataFile, want.DataFile)
	}
	if !cfg.EventLog {
		t.Error("EventLog should default to true")
	}
	if cfg.DefaultFilter != FilterAll || cfg.DefaultSortKey != SortByDate || cfg.DefaultSortOrder != SortDescending {
		t.Errorf("view defaults = %s/%s/%s", cfg.DefaultFilter, cfg.DefaultSortKey, cfg.DefaultSortOrder)
	}
	if cfg.Limits != DefaultLimits() {
		t.Errorf("limits = %+v, want defaults", cfg.Limits)
	}
}

func TestConfigLoaderReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := `storage:
  file: my-tasks.yaml
observability:
  event_log: false
view:
  filter: active
  sort: priority
  order: ascending
limits:
  title_max: 80
`
	if err := os.WriteFile(filepath.Join(dir, ".taskdeck.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := NewConfigLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataFile != "my-tasks.yaml" {
		t.Errorf("DataFile = %q, want my-tasks.yaml", cfg.DataFile)
	}
	if cfg.EventLog {
		t.Error("EventLog should be disabled")
	}
	if cfg.DefaultFilter != FilterActive {
		t.Errorf("filter = %q, want active", cfg.DefaultFilter)
	}
	if cfg.DefaultSortKey != SortByPriority {
		t.Errorf("sort = %q, want priority", cfg.DefaultSortKey)
	}
	if cfg.DefaultSortOrder != SortAscending {
		t.Errorf("order = %q, want ascending", cfg.DefaultSortOrder)
	}
	if cfg.Limits.TitleMaxLength != 80 {
		t.Errorf("title_max = %d, want 80", cfg.Limits.TitleMaxLength)
	}
	// Keys not present in the file keep their defaults.
	if cfg.Limits.TagsMaxCount != DefaultLimits().TagsMaxCount {
		t.Errorf("tags_max = %d, want default %d", cfg.Limits.TagsMaxCount, DefaultLimits().TagsMaxCount)
	}
}

func TestConfigLoaderRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".taskdeck.yaml"), []byte("view: [unclosed"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := NewConfigLoader(dir).Load(); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestConfigValidate(t *testing.T) {
	loader := NewConfigLoader(t.TempDir())

	if err := loader.Validate(DefaultAppConfig()); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if err := loader.Validate(nil); err == nil {
		t.Error("nil config should fail validation")
	}

	cfg := DefaultAppConfig()
	cfg.DataFile = ""
	cfg.DefaultFilter = "urgent"
	cfg.Limits.TitleMaxLength = 0
	err := loader.Validate(cfg)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	for _, fragment := range []string{"storage.file", "view.filter", "limits.title_max"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error does not mention %s: %v", fragment, err)
		}
	}
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"seistats/internal/config"
)

func TestLoadYAML(t *testing.T) {
	data := []byte("dirs:\n  - results/run1\n  - results/run2\nsort: true\ndebug: debug\n")
	c, err := config.Load(data, ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Dirs) != 2 || c.Dirs[0] != "results/run1" {
		t.Errorf("Dirs = %v", c.Dirs)
	}
	if !c.Sort {
		t.Error("Sort should be true")
	}
	if c.Debug != "debug" {
		t.Errorf("Debug = %q", c.Debug)
	}
}

func TestLoadJSON(t *testing.T) {
	data := []byte(`{"files": ["a.json"], "markdown": true, "db": "x.db"}`)
	c, err := config.Load(data, ".json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Files) != 1 || c.Files[0] != "a.json" {
		t.Errorf("Files = %v", c.Files)
	}
	if !c.Markdown || c.DB != "x.db" {
		t.Errorf("Markdown=%v DB=%q", c.Markdown, c.DB)
	}
}

func TestDetectByContent(t *testing.T) {
	c, err := config.Load([]byte(`  {"sort": true}`), "")
	if err != nil {
		t.Fatalf("Load json content: %v", err)
	}
	if !c.Sort {
		t.Error("json content not detected")
	}

	c, err = config.Load([]byte("sort: true\n"), "")
	if err != nil {
		t.Fatalf("Load yaml content: %v", err)
	}
	if !c.Sort {
		t.Error("yaml content not detected")
	}
}

func TestYmlExtension(t *testing.T) {
	c, err := config.Load([]byte("debug: warn\n"), ".yml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Debug != "warn" {
		t.Errorf("Debug = %q", c.Debug)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(path, []byte("dirs: [out]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if len(c.Dirs) != 1 || c.Dirs[0] != "out" {
		t.Errorf("Dirs = %v", c.Dirs)
	}
}

func TestLoadFromPath_Missing(t *testing.T) {
	if _, err := config.LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBadYAML(t *testing.T) {
	if _, err := config.Load([]byte(":\n  - ["), ".yaml"); err == nil {
		t.Error("expected parse error")
	}
}

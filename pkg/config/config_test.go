package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Dict.Backend != "hash" || c.Dict.Buckets != 25 || c.CLI.DefaultTop != 10 {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[dict]
backend = "trie"
lowercase = true

[server]
max_top = 7
`)
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Dict.Backend != "trie" || !c.Dict.Lowercase || c.Server.MaxTop != 7 {
		t.Errorf("values not loaded: %+v", c)
	}
	if c.Dict.Buckets != 25 || c.CLI.DefaultTop != 10 {
		t.Errorf("unset values lost their defaults: %+v", c)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
dict:
  backend: patricia
  buckets: 101
cli:
  default_top: 3
`)
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Dict.Backend != "patricia" || c.Dict.Buckets != 101 || c.CLI.DefaultTop != 3 {
		t.Errorf("values not loaded: %+v", c)
	}
	if c.Server.MaxTop != 100 {
		t.Errorf("unset values lost their defaults: %+v", c)
	}
}

func TestPartialParse(t *testing.T) {
	// buckets has the wrong type for the struct, the rest must survive
	path := writeFile(t, "config.toml", `
[dict]
backend = "trie"
buckets = "many"

[cli]
default_top = 5
`)
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Dict.Backend != "trie" || c.CLI.DefaultTop != 5 {
		t.Errorf("valid keys not recovered: %+v", c)
	}
	if c.Dict.Buckets != 25 {
		t.Errorf("invalid key should keep default, got %d", c.Dict.Buckets)
	}
}

func TestBrokenTOMLFallsBackToDefaults(t *testing.T) {
	path := writeFile(t, "config.toml", "[dict\nbackend = ")
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *c != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", c)
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yml"} {
		path := filepath.Join(t.TempDir(), "nested", name)
		c, err := InitConfig(path)
		if err != nil {
			t.Fatalf("InitConfig(%s): %v", name, err)
		}
		if *c != *DefaultConfig() {
			t.Errorf("%s: expected defaults, got %+v", name, c)
		}
		reloaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("reloading %s: %v", name, err)
		}
		if *reloaded != *DefaultConfig() {
			t.Errorf("%s: written file does not round trip: %+v", name, reloaded)
		}
	}
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeFile(t, "custom.toml", "[dict]\nbackend = \"trie\"\n")
	c, used, err := LoadConfigWithPriority(path)
	if err != nil {
		t.Fatalf("LoadConfigWithPriority: %v", err)
	}
	if used != path || c.Dict.Backend != "trie" {
		t.Errorf("custom path not used: %s %+v", used, c)
	}
}

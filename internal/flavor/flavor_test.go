package flavor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileFallsBack(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.json"))
	if len(p.Lines(true)) == 0 || len(p.Lines(false)) == 0 {
		t.Fatalf("fallback pool empty")
	}
}

func TestLoadFileOverridesRoles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flavor.json")
	body := []byte(`{"worker": ["one line"]}`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p := Load(path)
	if got := p.Lines(false); len(got) != 1 || got[0] != "one line" {
		t.Fatalf("worker lines not overridden: %v", got)
	}
	// Owner role missing from the file keeps the fallback.
	if len(p.Lines(true)) == 0 {
		t.Fatalf("owner fallback lost")
	}
}

func TestLoadCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flavor.json")
	if err := os.WriteFile(path, []byte("{oops"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p := Load(path)
	if len(p.Lines(false)) == 0 {
		t.Fatalf("corrupt file must fall back")
	}
}

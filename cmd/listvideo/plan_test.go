package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolvePlanPath(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "plan_a.yaml")
	newer := filepath.Join(dir, "plan_b.yaml")
	for _, p := range []string{older, newer} {
		if err := os.WriteFile(p, []byte("version: \"1.0\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-time.Hour)
	os.Chtimes(older, past, past)

	got, err := resolvePlanPath("latest", dir)
	if err != nil || got != newer {
		t.Errorf("resolvePlanPath(latest) = %q, %v; want %q", got, err, newer)
	}

	explicit := filepath.Join(dir, "custom.yaml")
	if got, err := resolvePlanPath(explicit, dir); err != nil || got != explicit {
		t.Errorf("explicit path rewritten to %q (%v)", got, err)
	}

	if _, err := resolvePlanPath("latest", t.TempDir()); err == nil {
		t.Error("expected error when no plans exist")
	}
}

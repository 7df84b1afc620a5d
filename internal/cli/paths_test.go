package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
	if !strings.HasSuffix(dir, "cytoconv") {
		t.Errorf("cacheDir() = %q, should end with cytoconv", dir)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestOutputFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"", false},
		{"-", false},
		{"out.json", true},
	}
	for _, tt := range tests {
		if got := outputFile(tt.path); got != tt.want {
			t.Errorf("outputFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

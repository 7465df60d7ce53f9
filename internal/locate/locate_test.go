package locate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"echosynth-go/internal/types"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "sample.mp3")
	writeFile(t, audio)

	got, err := Resolve(audio, "data")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != audio {
		t.Errorf("Resolve() = %q, want %q", got, audio)
	}
}

func TestResolveRelativeToWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sample.mp3"))
	chdir(t, dir)

	got, err := Resolve("sample.mp3", filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if filepath.Base(got) != "sample.mp3" || !filepath.IsAbs(got) {
		t.Errorf("Resolve() = %q, want absolute path to sample.mp3", got)
	}
}

func TestResolveFallsBackToDataDir(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	writeFile(t, filepath.Join(dataDir, "sample.mp3"))
	chdir(t, dir)

	// bare filename present only under data/
	got, err := Resolve("sample.mp3", dataDir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := filepath.Join(dataDir, "sample.mp3")
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveNotFound(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	tests := []struct {
		name      string
		candidate string
	}{
		{"missing file", "missing.mp3"},
		{"empty candidate", ""},
		{"missing absolute", filepath.Join(dir, "nope.mp3")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.candidate, filepath.Join(dir, "data"))
			if !errors.Is(err, types.ErrFileNotFound) {
				t.Errorf("Resolve(%q) error = %v, want ErrFileNotFound", tt.candidate, err)
			}
		})
	}
}

func TestResolveSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sample.mp3"), 0o755); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	_, err := Resolve("sample.mp3", filepath.Join(dir, "data"))
	if !errors.Is(err, types.ErrFileNotFound) {
		t.Errorf("Resolve() error = %v, want ErrFileNotFound for directory match", err)
	}
}

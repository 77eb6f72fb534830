package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func paths(files []SourceFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestDiscoverSources_WalksDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "pkg", "util.py"), "y = 2\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "not python\n")

	files, err := DiscoverSources([]string{root})
	if err != nil {
		t.Fatalf("DiscoverSources: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), paths(files))
	}
	if files[0].Module != "main" {
		t.Errorf("expected module 'main', got %q", files[0].Module)
	}
}

func TestDiscoverSources_AcceptsFileDirectly(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "script.py")
	writeFile(t, file, "pass\n")

	files, err := DiscoverSources([]string{file})
	if err != nil {
		t.Fatalf("DiscoverSources: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
}

func TestDiscoverSources_SkipsVendoredAndHidden(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"), "pass\n")
	writeFile(t, filepath.Join(root, "__pycache__", "app.cpython-312.py"), "pass\n")
	writeFile(t, filepath.Join(root, "venv", "lib.py"), "pass\n")
	writeFile(t, filepath.Join(root, ".hidden", "secret.py"), "pass\n")

	files, err := DiscoverSources([]string{root})
	if err != nil {
		t.Fatalf("DiscoverSources: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected only app.py, got %v", paths(files))
	}
}

func TestDiscoverSources_HonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "generated.py\n")
	writeFile(t, filepath.Join(root, "kept.py"), "pass\n")
	writeFile(t, filepath.Join(root, "generated.py"), "pass\n")

	files, err := DiscoverSources([]string{root})
	if err != nil {
		t.Fatalf("DiscoverSources: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file after gitignore, got %v", paths(files))
	}
	if files[0].Module != "kept" {
		t.Errorf("expected 'kept', got %q", files[0].Module)
	}
}

func TestDiscoverSources_DeduplicatesAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.py"), "pass\n")
	writeFile(t, filepath.Join(root, "a.py"), "pass\n")

	files, err := DiscoverSources([]string{root, root, filepath.Join(root, "a.py")})
	if err != nil {
		t.Fatalf("DiscoverSources: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 deduplicated files, got %v", paths(files))
	}
	if files[0].Module != "a" || files[1].Module != "b" {
		t.Errorf("expected sorted order a, b; got %v", paths(files))
	}
}

func TestDiscoverSources_MissingPath(t *testing.T) {
	if _, err := DiscoverSources([]string{filepath.Join(t.TempDir(), "gone")}); err == nil {
		t.Fatal("expected error for missing path")
	}
}

package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeJSON(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadCPU(t *testing.T) {
	path := writeJSON(t, "cpu.json", `{
		"total_time": 1.25,
		"functions": [
			{"name": "main", "calls": "1", "total_time": 0.5, "cumulative_time": 1.25},
			{"name": "fib", "calls": "88/1", "total_time": 0.7, "cumulative_time": 0.7}
		]
	}`)

	p, err := LoadCPU(path)
	if err != nil {
		t.Fatalf("LoadCPU: %v", err)
	}
	if p.TotalTime != 1.25 {
		t.Errorf("expected total_time 1.25, got %f", p.TotalTime)
	}
	if len(p.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(p.Functions))
	}
	if p.Functions[1].Calls != "88/1" {
		t.Errorf("expected raw recursive call count preserved, got %q", p.Functions[1].Calls)
	}
}

func TestLoadMemory(t *testing.T) {
	path := writeJSON(t, "mem.json", `{
		"timestamps": [0.0, 1.0, 2.0],
		"memory_mb": [100.0, 150.0, 140.0],
		"baseline_memory": 100.0,
		"peak_memory": 150.0,
		"final_memory": 140.0,
		"memory_increase": 40.0
	}`)

	p, err := LoadMemory(path)
	if err != nil {
		t.Fatalf("LoadMemory: %v", err)
	}
	if len(p.Timestamps) != len(p.MemoryMB) {
		t.Errorf("timestamps and samples must be parallel, got %d and %d",
			len(p.Timestamps), len(p.MemoryMB))
	}
	if p.PeakMemory != 150.0 {
		t.Errorf("expected peak 150.0, got %f", p.PeakMemory)
	}
}

func TestLoadLine(t *testing.T) {
	path := writeJSON(t, "line.json", `{
		"functions": [
			{
				"name": "hot",
				"total_time": 2.0,
				"lines": {
					"12": {"hits": 100, "time": 1.8, "percentage": 90.0, "content": "for x in data:"}
				}
			}
		]
	}`)

	p, err := LoadLine(path)
	if err != nil {
		t.Fatalf("LoadLine: %v", err)
	}
	if len(p.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(p.Functions))
	}
	stat, ok := p.Functions[0].Lines[12]
	if !ok {
		t.Fatal("expected line 12 present")
	}
	if stat.Percentage != 90.0 {
		t.Errorf("expected 90.0%%, got %f", stat.Percentage)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := LoadCPU(filepath.Join(t.TempDir(), "gone.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeJSON(t, "bad.json", `{"total_time": }`)
	if _, err := LoadCPU(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

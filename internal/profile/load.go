package profile

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadCPU reads a CPU profile summary from a JSON file.
func LoadCPU(path string) (*CPUProfile, error) {
	var p CPUProfile
	if err := loadJSON(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadMemory reads a memory profile summary from a JSON file.
func LoadMemory(path string) (*MemoryProfile, error) {
	var p MemoryProfile
	if err := loadJSON(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadLine reads a line-level profile summary from a JSON file.
func LoadLine(path string) (*LineProfile, error) {
	var p LineProfile
	if err := loadJSON(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading profile %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return nil
}

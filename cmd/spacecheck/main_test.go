package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDef(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		content   string
		wantValid bool
	}{
		{
			name:      "valid definition",
			content:   `{"name": "Lobby", "dimensions": "100x200", "elements": [{"elementId": "desk", "x": 3, "y": 4}]}`,
			wantValid: true,
		},
		{
			name:      "valid with no elements",
			content:   `{"name": "Empty", "dimensions": "5x5", "elements": []}`,
			wantValid: true,
		},
		{
			name:      "broken json",
			content:   `{not json`,
			wantValid: false,
		},
		{
			name:      "missing name",
			content:   `{"dimensions": "10x10", "elements": []}`,
			wantValid: false,
		},
		{
			name:      "bad dimensions",
			content:   `{"name": "X", "dimensions": "10by10", "elements": []}`,
			wantValid: false,
		},
		{
			name:      "zero dimension",
			content:   `{"name": "X", "dimensions": "0x10", "elements": []}`,
			wantValid: false,
		},
		{
			name:      "element out of bounds",
			content:   `{"name": "X", "dimensions": "5x5", "elements": [{"elementId": "a", "x": 5, "y": 0}]}`,
			wantValid: false,
		},
		{
			name:      "negative element position",
			content:   `{"name": "X", "dimensions": "5x5", "elements": [{"elementId": "a", "x": -1, "y": 0}]}`,
			wantValid: false,
		},
		{
			name: "duplicate element id",
			content: `{"name": "X", "dimensions": "5x5", "elements": [
				{"elementId": "a", "x": 0, "y": 0},
				{"elementId": "a", "x": 1, "y": 0}]}`,
			wantValid: false,
		},
		{
			name: "overlapping elements",
			content: `{"name": "X", "dimensions": "5x5", "elements": [
				{"elementId": "a", "x": 2, "y": 2},
				{"elementId": "b", "x": 2, "y": 2}]}`,
			wantValid: false,
		},
		{
			name: "fully blocked space",
			content: `{"name": "X", "dimensions": "1x2", "elements": [
				{"elementId": "a", "x": 0, "y": 0},
				{"elementId": "b", "x": 0, "y": 1}]}`,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDef(t, dir, "def.json", tt.content)
			result := validateFile(path)
			if result.Valid != tt.wantValid {
				t.Errorf("Valid: got %v, want %v (notes: %v)", result.Valid, tt.wantValid, result.Notes)
			}
		})
	}
}

func TestRunMissingDir(t *testing.T) {
	if err := run(filepath.Join(t.TempDir(), "nowhere")); err == nil {
		t.Fatal("expected an error for an empty directory")
	}
}

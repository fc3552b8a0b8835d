// Command spacecheck validates space definition JSON files before they
// are served. It checks:
//   - JSON structure and required fields
//   - Dimension syntax ("WIDTHxHEIGHT", both positive)
//   - Element bounds and duplicate element IDs or cells
//   - That at least one free cell remains for spawning
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/gridverse/spacesync/catalog"
	"github.com/gridverse/spacesync/space/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Notes contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File  string
	Valid bool
	Notes []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// validateFile loads and validates a single space definition file.
func validateFile(path string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(path),
		Valid: true,
		Notes: []string{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var def catalog.SpaceDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if def.Name == "" {
		result.fail("Missing name")
	}

	width, height, err := engine.ParseDimensions(def.Dimensions)
	if err != nil {
		result.fail("Invalid dimensions %q: %v", def.Dimensions, err)
		return result
	}

	seenIDs := make(map[string]bool)
	seenCells := make(map[engine.Position]bool)
	for i, el := range def.Elements {
		if el.ElementID == "" {
			result.fail("Element %d has no elementId", i)
			continue
		}
		if seenIDs[el.ElementID] {
			result.fail("Duplicate elementId %q", el.ElementID)
		}
		seenIDs[el.ElementID] = true

		pos := engine.Position{X: el.X, Y: el.Y}
		if el.X < 0 || el.Y < 0 || el.X >= width || el.Y >= height {
			result.fail("Element %q at (%d,%d) outside %dx%d", el.ElementID, el.X, el.Y, width, height)
		}
		if seenCells[pos] {
			result.fail("Elements overlap at (%d,%d)", el.X, el.Y)
		}
		seenCells[pos] = true
	}

	if len(def.Elements) >= width*height {
		free := width*height - len(seenCells)
		if free == 0 {
			result.fail("No free cell left to spawn into")
		}
	}

	if result.Valid {
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Name: %s", def.Name))
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Dimensions: %dx%d", width, height))
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Static elements: %d", len(def.Elements)))
	}

	return result
}

// run validates every *.json file under dir and prints a report.
func run(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("finding space files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no space definitions in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, note := range result.Notes {
				fmt.Println("  " + note)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, note := range result.Notes {
				fmt.Println("  ❌ " + note)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		return fmt.Errorf("some space definitions have errors")
	}
	fmt.Println("✅ All space definitions are valid!")
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "spacecheck",
		Usage: "validate space definition files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "spaces",
				Usage: "directory containing space definition JSON files",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(cmd.String("dir"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

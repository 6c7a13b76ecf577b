package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/gift-hunt/pkg/gift"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <catalog.json|catalog.yaml> [...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if err := validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid!\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func validateFile(filename string) error {
	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	if ext != ".json" && !gift.IsYAML(baseName) {
		return fmt.Errorf("catalog file must have a .json, .yaml or .yml extension: %s", baseName)
	}
	if !validFilenameRegex.MatchString(strings.TrimSuffix(baseName, ext)) {
		return fmt.Errorf("catalog filename '%s' must be lowercase snake_case (e.g., birthday_2026.json)", baseName)
	}

	// LoadCatalog decodes strictly and runs Validate.
	catalog, err := gift.LoadCatalog(filename)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	for _, g := range catalog.Gifts() {
		delay, err := catalog.UnlockDelay(g.Ordinal)
		if err != nil {
			fmt.Printf("  #%d %s (no lock)\n", g.Ordinal, g.Name)
			continue
		}
		fmt.Printf("  #%d %s (unlocks %s after previous gift)\n", g.Ordinal, g.Name, delay)
	}
	return nil
}

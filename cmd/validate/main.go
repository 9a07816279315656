package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/scamshield/scamshield/pkg/scenario"
)

// validate checks scenario content files before they ship. Usage:
//
//	validate data/scenarios/01_lottery_scam.json [more files...]
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <scenario.json> [<scenario.json>...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if err := validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "%s: FAILED\n%v\n", filename, err)
			failed = true
			continue
		}
		fmt.Printf("%s: ok\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

var filenamePattern = regexp.MustCompile(`^[0-9]*_?[a-z][a-z0-9_]*$`)

func validateFile(filename string) error {
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("scenario file must have .json extension: %s", baseName)
	}
	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !filenamePattern.MatchString(nameWithoutExt) {
		return fmt.Errorf("scenario filename %q must be lowercase snake_case with an optional numeric order prefix (e.g. 01_lottery_scam.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if !json.Valid(data) {
		return fmt.Errorf("file contains invalid JSON")
	}

	var s scenario.Scenario
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&s); err != nil {
		return fmt.Errorf("strict JSON unmarshaling failed: %w", err)
	}

	return s.Validate()
}

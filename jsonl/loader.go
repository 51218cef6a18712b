// Package jsonl stores review sessions as JSON Lines files.
package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/store"
)

// maxLineSize is the maximum size for a single JSONL line (4MB).
// This accommodates large elements while preventing memory issues.
const maxLineSize = 4 * 1024 * 1024

// LoadElements reads an element snapshot from a JSONL file, one element per
// line. Element ids must be unique.
func LoadElements(path string) ([]redline.Element, error) {
	elements, err := readLines[redline.Element](path)
	if err != nil {
		return nil, err
	}
	if _, err := store.Load(elements); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return elements, nil
}

// readLines decodes one T per non-blank line. A missing file yields
// os.ErrNotExist.
func readLines[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var r T
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}
		records = append(records, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// readOptionalLines is readLines with a missing file treated as empty.
func readOptionalLines[T any](path string) ([]T, error) {
	records, err := readLines[T](path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return records, err
}

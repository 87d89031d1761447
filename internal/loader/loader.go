// Package loader reads the JSON-with-comments data files.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tailscale/hujson"

	"ritdining/internal/models"
)

// Loader errors.
var (
	ErrNotObject  = errors.New("top-level value must be an object")
	ErrNoEntries  = errors.New("no entries found")
	ErrEntryShape = errors.New("entry must be an object")
)

// Parse standardizes JSONC (comments, trailing commas) into plain JSON.
func Parse(data []byte) ([]byte, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSONC: %w", err)
	}

	return std, nil
}

// ReadFile reads and standardizes a JSONC file.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	std, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return std, nil
}

// LoadRestaurants reads the restaurants file, an object of key -> record.
// Entries keep their document order. The file must hold a non-empty object;
// values that are not objects are returned with Entry.Err set so the caller
// can skip them.
func LoadRestaurants(path string) ([]models.Entry, error) {
	std, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	entries, err := decodeEntries(std)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoEntries)
	}

	return entries, nil
}

// LoadHomepage reads the single homepage record.
func LoadHomepage(path string) (models.Record, error) {
	std, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec map[string]any
	if err := json.Unmarshal(std, &rec); err != nil || rec == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNotObject)
	}

	return rec, nil
}

// LoadReviews reads the reviews file, an object of slug -> list of reviews.
// Values are kept as decoded; malformed lists are dealt with when attached.
func LoadReviews(path string) (map[string]any, error) {
	std, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	var reviews map[string]any
	if err := json.Unmarshal(std, &reviews); err != nil || reviews == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNotObject)
	}

	return reviews, nil
}

// Exists reports whether an optional source file is present.
func Exists(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

func decodeEntries(std []byte) ([]models.Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(std))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	var entries []models.Entry

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode key: %w", err)
		}

		key, _ := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to decode %q: %w", key, err)
		}

		entry := models.Entry{Key: key}
		if rec, ok := value.(map[string]any); ok {
			entry.Record = rec
		} else {
			entry.Err = fmt.Errorf("%w: %q holds %T", ErrEntryShape, key, value)
		}

		entries = append(entries, entry)
	}

	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}

	return entries, nil
}

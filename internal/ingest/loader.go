package ingest

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoEntries indicates the file parsed cleanly but yielded nothing usable.
var ErrNoEntries = errors.New("watchlist contains no entries")

// symbolColumns are the CSV header names accepted for the identifier column,
// checked in order.
var symbolColumns = []string{"Ticker", "ticker", "Symbol", "symbol"}

// Load reads identifiers from a watchlist file, dispatching on extension.
// Entries are returned in file order with surrounding whitespace trimmed;
// blank entries are dropped. An empty result is an error.
func Load(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("watchlist not readable: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("watchlist %s is a directory", path)
	}

	var entries []string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt":
		entries, err = loadText(path)
	case ".csv":
		entries, err = loadCSV(path)
	case ".json":
		entries, err = loadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported watchlist format %q (want .txt, .csv, or .json)", ext)
	}
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoEntries)
	}
	return entries, nil
}

func loadText(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries, nil
}

func loadCSV(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv watchlist: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	column := -1
	for _, want := range symbolColumns {
		for i, header := range records[0] {
			if strings.TrimSpace(header) == want {
				column = i
				break
			}
		}
		if column >= 0 {
			break
		}
	}
	if column < 0 {
		return nil, fmt.Errorf("csv watchlist %s has no ticker or symbol column", path)
	}

	var entries []string
	for _, record := range records[1:] {
		if column >= len(record) {
			continue
		}
		value := strings.TrimSpace(record[column])
		if value == "" {
			continue
		}
		entries = append(entries, value)
	}
	return entries, nil
}

func loadJSON(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		var entries []string
		for _, value := range list {
			if value = strings.TrimSpace(value); value != "" {
				entries = append(entries, value)
			}
		}
		return entries, nil
	}

	// Mapping form: display-name keys, identifier values. Entries still
	// awaiting an identifier carry null and are dropped.
	var mapping map[string]*string
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("parse json watchlist: %w", err)
	}
	var entries []string
	for _, value := range mapping {
		if value == nil {
			continue
		}
		if identifier := strings.TrimSpace(*value); identifier != "" {
			entries = append(entries, identifier)
		}
	}
	// Map iteration order is random; sort so mapping watchlists load the same
	// way every run.
	sort.Strings(entries)
	return entries, nil
}

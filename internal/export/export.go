package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"tickerforge/internal/ident"
)

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9_]+`)

// SafeName lowercases a label and collapses anything outside [a-z0-9_] into
// underscores, so labels are usable as filename stems.
func SafeName(label string) string {
	name := strings.ToLower(strings.TrimSpace(label))
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "watchlist"
	}
	return name
}

// Paths lists the files one WriteReport call produced.
type Paths struct {
	ResultsJSON   string
	ContractsCSV  string
	UnresolvedTXT string
	ImportCSV     string
}

// WriteReport writes all export artifacts for a report under dir. The
// unresolved file is only written when there is something unresolved.
func WriteReport(dir, label string, report ident.Report) (Paths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create export directory: %w", err)
	}
	name := SafeName(label)

	paths := Paths{
		ResultsJSON:  filepath.Join(dir, fmt.Sprintf("watchlist_%s_results.json", name)),
		ContractsCSV: filepath.Join(dir, fmt.Sprintf("watchlist_%s_contracts.csv", name)),
		ImportCSV:    filepath.Join(dir, fmt.Sprintf("%s_import.csv", name)),
	}

	if err := writeJSON(paths.ResultsJSON, report); err != nil {
		return Paths{}, err
	}
	if err := writeContractsCSV(paths.ContractsCSV, report.Resolved); err != nil {
		return Paths{}, err
	}
	if err := writeImportCSV(paths.ImportCSV, report.Resolved); err != nil {
		return Paths{}, err
	}

	if len(report.Unresolved) > 0 {
		paths.UnresolvedTXT = filepath.Join(dir, fmt.Sprintf("watchlist_%s_failed.txt", name))
		contents := strings.Join(report.Unresolved, "\n") + "\n"
		if err := os.WriteFile(paths.UnresolvedTXT, []byte(contents), 0o644); err != nil {
			return Paths{}, fmt.Errorf("write unresolved list: %w", err)
		}
	}
	return paths, nil
}

func writeJSON(path string, report ident.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write results json: %w", err)
	}
	return nil
}

func writeContractsCSV(path string, resolved []ident.ResolvedRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create contracts csv: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"Identifier", "Symbol", "Exchange", "Currency", "SecurityType", "ContractID"}); err != nil {
		return fmt.Errorf("write contracts header: %w", err)
	}
	for _, record := range resolved {
		row := []string{record.Identifier, record.Symbol, record.Exchange, record.Currency, record.SecurityType, record.ExternalID}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write contracts row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush contracts csv: %w", err)
	}
	return nil
}

func writeImportCSV(path string, resolved []ident.ResolvedRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create import csv: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"Symbol", "Exchange", "Currency", "SecurityType"}); err != nil {
		return fmt.Errorf("write import header: %w", err)
	}
	for _, record := range resolved {
		if err := writer.Write([]string{record.Symbol, record.Exchange, record.Currency, record.SecurityType}); err != nil {
			return fmt.Errorf("write import row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush import csv: %w", err)
	}
	return nil
}

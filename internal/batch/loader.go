package batch

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"soptcli/pkg/contracts/domain"
)

// Column headers the loader requires beyond the tracked variables.
const (
	timestampColumn = "Timestamp"
	batchIDColumn   = "batch_id"
)

// timestampLayouts are tried in order when parsing the Timestamp column.
// Historian exports use ISO-like date-time strings without a zone.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Loader reads a raw tabular source into a validated Table.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader with the given logger.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "batch_loader"))}
}

// Load reads the sensor log at path and returns the validated table.
// CSV and XLSX sources are supported; the format is chosen by extension.
//
// Loading has no side effects beyond the read and is idempotent: the same
// source bytes always produce an identical table. Any row with an
// unparseable timestamp fails the whole load.
func (l *Loader) Load(path string) (*domain.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSXRows(path)
	default:
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}

	table, err := l.buildTable(rows)
	if err != nil {
		return nil, err
	}

	table.Source = path
	table.LoadedAt = time.Now()

	l.logger.Info("batch table loaded",
		slog.String("source", path),
		slog.Int("readings", table.Len()))

	return table, nil
}

// readCSVRows reads all records from a CSV file. FieldsPerRecord is left at
// the default so ragged rows fail the load instead of producing a partial
// table.
func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	return rows, nil
}

// readXLSXRows reads all rows from the first sheet of an XLSX workbook.
// Historian tools commonly export a single-sheet workbook instead of CSV.
func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrSchemaInvalid)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// buildTable validates the header, parses every data row and returns the
// typed table. Column positions are resolved once from the header so all
// downstream code operates on a known shape.
func (l *Loader) buildTable(rows [][]string) (*domain.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: source has no header row", ErrSchemaInvalid)
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	table := &domain.Table{Readings: make([]domain.Reading, 0, len(rows)-1)}

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		if isBlankRow(row) {
			continue
		}

		reading, err := l.parseRow(row, rowNum, columns)
		if err != nil {
			return nil, err
		}
		if reading.BatchID == "" {
			l.logger.Debug("skipping reading without batch id",
				slog.Int("row", rowNum))
			continue
		}

		table.Readings = append(table.Readings, reading)
	}

	if table.Len() == 0 {
		return nil, ErrEmptyTable
	}

	return table, nil
}

// mapColumns resolves each required column to its index in the header.
// A wholly absent required column is a schema failure at load time, not a
// per-row missing value.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	required := []string{timestampColumn, batchIDColumn}
	for _, v := range domain.Variables() {
		required = append(required, string(v))
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSchemaInvalid, name)
		}
	}

	return columns, nil
}

func (l *Loader) parseRow(row []string, rowNum int, columns map[string]int) (domain.Reading, error) {
	var reading domain.Reading

	ts, err := parseTimestamp(cell(row, columns[timestampColumn]))
	if err != nil {
		return reading, fmt.Errorf("row %d: %w", rowNum, err)
	}
	reading.Timestamp = ts
	reading.BatchID = cell(row, columns[batchIDColumn])

	for _, v := range domain.Variables() {
		value, err := parseNumeric(cell(row, columns[string(v)]))
		if err != nil {
			return reading, fmt.Errorf("row %d: column %q: %w", rowNum, v, err)
		}
		reading.SetValue(v, value)
	}

	return reading, nil
}

// parseTimestamp converts a Timestamp cell to an absolute instant.
func parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrTimestampUnparseable)
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrTimestampUnparseable, raw)
}

// parseNumeric converts a variable cell to a float64. Empty cells and an
// explicit NaN marker are missing samples; anything else must be a finite
// number.
func parseNumeric(raw string) (float64, error) {
	if raw == "" || strings.EqualFold(raw, "nan") {
		return math.NaN(), nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrValueInvalid, raw)
	}
	if math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrValueInvalid, raw)
	}
	return value, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

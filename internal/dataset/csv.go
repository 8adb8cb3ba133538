package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names recognized in CSV headers. Matching is case-insensitive.
// "county" is accepted as an alias for "region": the upstream Kenyan
// datasets use county-level rows.
const (
	colDate      = "date"
	colRegion    = "region"
	colCounty    = "county"
	colSource    = "source"
	colMWh       = "generation_mwh"
	colEmissions = "emissions_tco2"
)

// loadGenerationCSV reads generation rows from a CSV file. A missing file
// yields an empty table, not an error; missing columns degrade to zero/empty
// values per row. Only a genuinely malformed file (unreadable CSV) errors.
func loadGenerationCSV(path string) ([]GenerationRow, error) {
	records, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	rows := make([]GenerationRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, GenerationRow{
			Date:   header.str(rec, colDate),
			Region: header.region(rec),
			Source: header.str(rec, colSource),
			MWh:    header.num(rec, colMWh),
		})
	}
	return rows, nil
}

// loadEmissionsCSV reads emissions rows from a CSV file with the same
// degradation rules as loadGenerationCSV.
func loadEmissionsCSV(path string) ([]EmissionRow, error) {
	records, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	rows := make([]EmissionRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, EmissionRow{
			Date:   header.str(rec, colDate),
			Region: header.region(rec),
			TCO2:   header.num(rec, colEmissions),
		})
	}
	return rows, nil
}

// headerIndex maps lowercased column names to their position in each record.
type headerIndex map[string]int

func (h headerIndex) str(rec []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// region resolves the region column, falling back to the county alias.
func (h headerIndex) region(rec []string) string {
	if _, ok := h[colRegion]; ok {
		return h.str(rec, colRegion)
	}
	return h.str(rec, colCounty)
}

// num parses a numeric cell. Absent columns and unparsable cells read as 0.
func (h headerIndex) num(rec []string, col string) float64 {
	raw := h.str(rec, col)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// readCSV opens and parses a CSV file, returning the data records and a
// header index. A missing file returns no records and no error.
func readCSV(path string) ([][]string, headerIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, headerIndex{}, nil
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows
	r.TrimLeadingSpace = true

	head, err := r.Read()
	if err == io.EOF {
		return nil, headerIndex{}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read %s header: %w", path, err)
	}

	header := headerIndex{}
	for i, name := range head {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		records = append(records, rec)
	}
	return records, header, nil
}

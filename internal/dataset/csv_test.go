package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadGenerationCSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "generation.csv",
		"date,region,source,generation_mwh\n"+
			"2026-01-01,Nairobi,hydro,300.5\n"+
			"2026-01-01,Mombasa,wind,120\n")

	rows, err := loadGenerationCSV(path)
	if err != nil {
		t.Fatalf("loadGenerationCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Region != "Nairobi" || rows[0].Source != "hydro" || rows[0].MWh != 300.5 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
}

func TestMissingFileDegradesToEmptyTable(t *testing.T) {
	rows, err := loadGenerationCSV(filepath.Join(t.TempDir(), "absent.csv"))
	if err != nil {
		t.Fatalf("missing file must not error, got %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected empty table, got %d rows", len(rows))
	}
}

func TestMissingColumnsDegradeToDefaults(t *testing.T) {
	// No source, no region column at all.
	path := writeFile(t, t.TempDir(), "generation.csv",
		"date,generation_mwh\n2026-01-01,42\n")

	rows, err := loadGenerationCSV(path)
	if err != nil {
		t.Fatalf("loadGenerationCSV: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Region != "" || rows[0].Source != "" || rows[0].MWh != 42 {
		t.Errorf("rows[0] = %+v, want empty region/source and MWh 42", rows[0])
	}
}

func TestCountyHeaderAliasesRegion(t *testing.T) {
	path := writeFile(t, t.TempDir(), "emissions.csv",
		"date,county,emissions_tCO2\n2026-01-01,Nairobi,12.5\n")

	rows, err := loadEmissionsCSV(path)
	if err != nil {
		t.Fatalf("loadEmissionsCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Region != "Nairobi" || rows[0].TCO2 != 12.5 {
		t.Errorf("rows = %+v, want one Nairobi row at 12.5", rows)
	}
}

func TestUnparsableNumericCellReadsAsZero(t *testing.T) {
	path := writeFile(t, t.TempDir(), "generation.csv",
		"region,generation_mwh\nNairobi,n/a\nMombasa,10\n")

	rows, err := loadGenerationCSV(path)
	if err != nil {
		t.Fatalf("loadGenerationCSV: %v", err)
	}
	if rows[0].MWh != 0 {
		t.Errorf("unparsable cell should read as 0, got %v", rows[0].MWh)
	}
	if rows[1].MWh != 10 {
		t.Errorf("rows[1].MWh = %v, want 10", rows[1].MWh)
	}
}

func TestEmptyFileDegradesToEmptyTable(t *testing.T) {
	path := writeFile(t, t.TempDir(), "generation.csv", "")

	rows, err := loadGenerationCSV(path)
	if err != nil {
		t.Fatalf("empty file must not error, got %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestRaggedRowsTolerated(t *testing.T) {
	path := writeFile(t, t.TempDir(), "generation.csv",
		"date,region,source,generation_mwh\n2026-01-01,Nairobi\n")

	rows, err := loadGenerationCSV(path)
	if err != nil {
		t.Fatalf("loadGenerationCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Region != "Nairobi" || rows[0].MWh != 0 {
		t.Errorf("rows = %+v, want one Nairobi row with MWh 0", rows)
	}
}

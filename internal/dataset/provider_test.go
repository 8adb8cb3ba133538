package dataset

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProviderLoadFromCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "generation.csv",
		"date,region,source,generation_mwh\n2026-01-01,Nairobi,hydro,500\n")
	writeFile(t, dir, "emissions.csv",
		"date,region,emissions_tCO2\n2026-01-01,Nairobi,120\n")

	p := NewProvider(DefaultManifest(dir), discardLogger())
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	snap := p.Snapshot()
	if len(snap.Generation) != 1 || len(snap.Emissions) != 1 {
		t.Fatalf("snapshot = %d generation / %d emissions rows, want 1/1",
			len(snap.Generation), len(snap.Emissions))
	}
	if snap.LoadedAt.IsZero() {
		t.Error("LoadedAt must be stamped on load")
	}
}

func TestProviderSnapshotBeforeLoadIsEmpty(t *testing.T) {
	p := NewProvider(DefaultManifest(t.TempDir()), discardLogger())

	snap := p.Snapshot()
	if snap == nil {
		t.Fatal("Snapshot must never be nil")
	}
	if !snap.Empty() {
		t.Errorf("pre-load snapshot must be empty, got %d/%d rows",
			len(snap.Generation), len(snap.Emissions))
	}
}

func TestProviderReloadPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "generation.csv",
		"region,generation_mwh\nNairobi,500\n")
	writeFile(t, dir, "emissions.csv",
		"region,emissions_tCO2\nNairobi,120\n")

	p := NewProvider(DefaultManifest(dir), discardLogger())
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	before := p.Snapshot()

	writeFile(t, dir, "generation.csv",
		"region,generation_mwh\nNairobi,500\nMombasa,200\n")
	if err := p.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	after := p.Snapshot()
	if len(after.Generation) != 2 {
		t.Errorf("reloaded generation rows = %d, want 2", len(after.Generation))
	}
	// The old snapshot is immutable; readers holding it are unaffected.
	if len(before.Generation) != 1 {
		t.Errorf("prior snapshot mutated: %d rows, want 1", len(before.Generation))
	}
}

func TestStaticProviderIgnoresLoad(t *testing.T) {
	tables := &Tables{Generation: []GenerationRow{{Region: "Nairobi", MWh: 1}}}
	p := NewStaticProvider(tables, discardLogger())

	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Snapshot() != tables {
		t.Error("static provider must keep its pinned snapshot across Load")
	}
}

func TestProviderLoadFromSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neis.db")

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	seed := []string{
		`CREATE TABLE generation (date TEXT, county TEXT, source TEXT, generation_mwh REAL)`,
		`INSERT INTO generation VALUES ('2026-01-01', 'Nairobi', 'hydro', 500.0)`,
		`INSERT INTO generation VALUES ('2026-01-01', 'Mombasa', 'wind', 200.0)`,
		`CREATE TABLE emissions (date TEXT, region TEXT, emissions_tco2 REAL)`,
		`INSERT INTO emissions VALUES ('2026-01-01', 'Nairobi', 120.0)`,
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	db.Close()

	m := Manifest{
		Generation: Source{
			Kind:   KindSQL,
			Driver: "sqlite",
			DSN:    path,
			Query:  "SELECT date, county, source, generation_mwh FROM generation",
		},
		Emissions: Source{
			Kind:   KindSQL,
			Driver: "sqlite",
			DSN:    path,
			Query:  "SELECT date, region, emissions_tco2 FROM emissions",
		},
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	p := NewProvider(m, discardLogger())
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	snap := p.Snapshot()
	if len(snap.Generation) != 2 {
		t.Fatalf("generation rows = %d, want 2", len(snap.Generation))
	}
	// The "county" result column feeds Region, same as the CSV alias.
	if snap.Generation[0].Region != "Nairobi" || snap.Generation[0].MWh != 500 {
		t.Errorf("generation[0] = %+v", snap.Generation[0])
	}
	if len(snap.Emissions) != 1 || snap.Emissions[0].TCO2 != 120 {
		t.Errorf("emissions = %+v, want one Nairobi row at 120", snap.Emissions)
	}
}

func TestProviderLoadBrokenSQLKeepsPriorSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "generation.csv", "region,generation_mwh\nNairobi,500\n")
	writeFile(t, dir, "emissions.csv", "region,emissions_tCO2\nNairobi,120\n")

	m := DefaultManifest(dir)
	p := NewProvider(m, discardLogger())
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	p.manifest.Generation = Source{
		Kind:   KindSQL,
		Driver: "sqlite",
		DSN:    filepath.Join(dir, "neis.db"),
		Query:  "SELECT * FROM no_such_table",
	}
	if err := p.Reload(context.Background()); err == nil {
		t.Fatal("expected error from broken sql source")
	}
	if len(p.Snapshot().Generation) != 1 {
		t.Error("failed reload must leave the prior snapshot in place")
	}
}

func TestManifestValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       Manifest
		wantErr bool
	}{
		{"default csv", DefaultManifest("data"), false},
		{"csv without path", Manifest{
			Generation: Source{Kind: KindCSV},
			Emissions:  Source{Kind: KindCSV, Path: "e.csv"},
		}, true},
		{"sql without dsn", Manifest{
			Generation: Source{Kind: KindSQL, Driver: "sqlite", Query: "SELECT 1"},
			Emissions:  Source{Kind: KindCSV, Path: "e.csv"},
		}, true},
		{"unknown driver", Manifest{
			Generation: Source{Kind: KindSQL, Driver: "dbase", DSN: "x", Query: "SELECT 1"},
			Emissions:  Source{Kind: KindCSV, Path: "e.csv"},
		}, true},
		{"unknown kind", Manifest{
			Generation: Source{Kind: "grpc"},
			Emissions:  Source{Kind: KindCSV, Path: "e.csv"},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadManifestFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dataset.yaml", `
generation:
  kind: csv
  path: data/generation.csv
emissions:
  kind: sql
  driver: sqlite
  dsn: data/neis.db
  query: SELECT region, emissions_tco2 FROM emissions
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Generation.Kind != KindCSV || m.Generation.Path != "data/generation.csv" {
		t.Errorf("generation = %+v", m.Generation)
	}
	if m.Emissions.Kind != KindSQL || m.Emissions.Driver != "sqlite" {
		t.Errorf("emissions = %+v", m.Emissions)
	}
}

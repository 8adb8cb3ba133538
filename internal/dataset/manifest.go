package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source kinds accepted in a manifest.
const (
	KindCSV = "csv"
	KindSQL = "sql"
)

// Manifest declares where the generation and emissions tables come from.
type Manifest struct {
	Generation Source `yaml:"generation"`
	Emissions  Source `yaml:"emissions"`
}

// Source describes a single table source. For kind "csv" only Path is used;
// for kind "sql" the Driver, DSN, and Query fields select and run the query.
type Source struct {
	Kind   string `yaml:"kind"`
	Path   string `yaml:"path"`
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Query  string `yaml:"query"`
}

// DefaultManifest returns the manifest used when no file is provided:
// CSV files under the given data directory, matching the upstream layout.
func DefaultManifest(dataDir string) Manifest {
	return Manifest{
		Generation: Source{Kind: KindCSV, Path: dataDir + "/generation.csv"},
		Emissions:  Source{Kind: KindCSV, Path: dataDir + "/emissions.csv"},
	}
}

// LoadManifest reads and validates a YAML manifest file.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	raw, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

// Validate checks that both sources are well-formed.
func (m Manifest) Validate() error {
	if err := m.Generation.validate("generation"); err != nil {
		return err
	}
	return m.Emissions.validate("emissions")
}

func (s Source) validate(name string) error {
	switch s.Kind {
	case KindCSV:
		if s.Path == "" {
			return fmt.Errorf("%s: csv source requires a path", name)
		}
	case KindSQL:
		if _, ok := sqlDriverName(s.Driver); !ok {
			return fmt.Errorf("%s: unsupported sql driver %q", name, s.Driver)
		}
		if s.DSN == "" || s.Query == "" {
			return fmt.Errorf("%s: sql source requires dsn and query", name)
		}
	default:
		return fmt.Errorf("%s: unknown source kind %q", name, s.Kind)
	}
	return nil
}

package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Provider loads the generation and emissions tables described by a manifest
// and holds them as an immutable snapshot. Reload builds a complete new
// snapshot before swapping it in, so concurrent readers always see a
// consistent pair of tables.
type Provider struct {
	manifest Manifest
	static   bool
	logger   *slog.Logger
	snap     atomic.Pointer[Tables]
}

// NewProvider creates a Provider for the given manifest. Call Load before
// serving requests.
func NewProvider(m Manifest, logger *slog.Logger) *Provider {
	p := &Provider{manifest: m, logger: logger}
	p.snap.Store(&Tables{})
	return p
}

// NewStaticProvider creates a Provider pinned to a fixed snapshot, bypassing
// any sources. Used for tests and embedded fixtures; Load and Reload are
// no-ops for it.
func NewStaticProvider(t *Tables, logger *slog.Logger) *Provider {
	p := &Provider{static: true, logger: logger}
	p.snap.Store(t)
	return p
}

// Load reads both tables from their sources and swaps in the new snapshot.
// Missing CSV files and absent columns degrade to empty/zero data; only
// broken SQL sources or malformed files error, in which case the previous
// snapshot stays in place.
func (p *Provider) Load(ctx context.Context) error {
	if p.static {
		return nil
	}
	gen, err := loadGeneration(ctx, p.manifest.Generation)
	if err != nil {
		return fmt.Errorf("load generation table: %w", err)
	}
	em, err := loadEmissions(ctx, p.manifest.Emissions)
	if err != nil {
		return fmt.Errorf("load emissions table: %w", err)
	}

	t := &Tables{Generation: gen, Emissions: em, LoadedAt: time.Now().UTC()}
	p.snap.Store(t)
	p.logger.Info("dataset loaded",
		"generation_rows", len(gen),
		"emissions_rows", len(em),
	)
	return nil
}

// Reload re-runs all sources. Alias for Load, named for the admin surface.
func (p *Provider) Reload(ctx context.Context) error {
	return p.Load(ctx)
}

// Snapshot returns the current dataset snapshot. Never nil; before the first
// successful Load it is empty.
func (p *Provider) Snapshot() *Tables {
	return p.snap.Load()
}

func loadGeneration(ctx context.Context, src Source) ([]GenerationRow, error) {
	switch src.Kind {
	case KindCSV:
		return loadGenerationCSV(src.Path)
	case KindSQL:
		return loadGenerationSQL(ctx, src)
	default:
		return nil, fmt.Errorf("unknown source kind %q", src.Kind)
	}
}

func loadEmissions(ctx context.Context, src Source) ([]EmissionRow, error) {
	switch src.Kind {
	case KindCSV:
		return loadEmissionsCSV(src.Path)
	case KindSQL:
		return loadEmissionsSQL(ctx, src)
	default:
		return nil, fmt.Errorf("unknown source kind %q", src.Kind)
	}
}

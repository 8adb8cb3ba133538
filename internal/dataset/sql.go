package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"
	_ "github.com/sijms/go-ora/v2"
	_ "github.com/snowflakedb/gosnowflake"
	_ "modernc.org/sqlite"
)

// sqlDriverName maps manifest driver names to the registered database/sql
// driver names. Kept in sync with the blank imports above.
func sqlDriverName(driver string) (string, bool) {
	switch driver {
	case "sqlite":
		return "sqlite", true
	case "postgres":
		return "pgx", true
	case "mysql":
		return "mysql", true
	case "sqlserver":
		return "sqlserver", true
	case "oracle":
		return "oracle", true
	case "snowflake":
		return "snowflake", true
	default:
		return "", false
	}
}

// loadGenerationSQL runs the source query and maps result columns onto
// generation rows. Column resolution follows the CSV rules: names are
// case-insensitive, "county" aliases "region", and absent columns degrade
// to zero/empty values.
func loadGenerationSQL(ctx context.Context, src Source) ([]GenerationRow, error) {
	records, err := querySQL(ctx, src)
	if err != nil {
		return nil, err
	}
	rows := make([]GenerationRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, GenerationRow{
			Date:   rec.str(colDate),
			Region: rec.region(),
			Source: rec.str(colSource),
			MWh:    rec.num(colMWh),
		})
	}
	return rows, nil
}

// loadEmissionsSQL runs the source query and maps result columns onto
// emissions rows.
func loadEmissionsSQL(ctx context.Context, src Source) ([]EmissionRow, error) {
	records, err := querySQL(ctx, src)
	if err != nil {
		return nil, err
	}
	rows := make([]EmissionRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, EmissionRow{
			Date:   rec.str(colDate),
			Region: rec.region(),
			TCO2:   rec.num(colEmissions),
		})
	}
	return rows, nil
}

// sqlRecord is one result row keyed by lowercased column name.
type sqlRecord map[string]interface{}

func (r sqlRecord) str(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	default:
		return fmt.Sprint(v)
	}
}

func (r sqlRecord) region() string {
	if _, ok := r[colRegion]; ok {
		return r.str(colRegion)
	}
	return r.str(colCounty)
}

func (r sqlRecord) num(col string) float64 {
	switch v := r[col].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case []byte:
		return parseFloatOrZero(string(v))
	case string:
		return parseFloatOrZero(v)
	default:
		return 0
	}
}

func parseFloatOrZero(s string) float64 {
	var f float64
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%g", &f); err != nil {
		return 0
	}
	return f
}

// querySQL connects, runs the source query, and returns all rows keyed by
// lowercased column name. The connection is opened per load; dataset loads
// are rare (startup and explicit reloads), so no pool is kept.
func querySQL(ctx context.Context, src Source) ([]sqlRecord, error) {
	driver, ok := sqlDriverName(src.Driver)
	if !ok {
		return nil, fmt.Errorf("unsupported sql driver %q", src.Driver)
	}

	db, err := sqlx.ConnectContext(ctx, driver, src.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s connect: %w", src.Driver, err)
	}
	defer db.Close()

	rows, err := db.QueryxContext(ctx, src.Query)
	if err != nil {
		return nil, fmt.Errorf("%s query: %w", src.Driver, err)
	}
	defer rows.Close()

	var records []sqlRecord
	for rows.Next() {
		raw := map[string]interface{}{}
		if err := rows.MapScan(raw); err != nil {
			return nil, fmt.Errorf("%s scan: %w", src.Driver, err)
		}
		rec := sqlRecord{}
		for k, v := range raw {
			rec[strings.ToLower(k)] = v
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

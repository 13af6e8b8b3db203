package persistent

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	_ "github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// PgOpen connects to postgres and checks the connection is alive.
// DB_VERBOSE=true logs every query.
func PgOpen(ctx context.Context, pgDsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("pg", pgDsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	if err = sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	if os.Getenv("DB_VERBOSE") == "true" {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db, nil
}

// Integration tests need a real postgres. testenv starts one and passes its
// datasource through PGDB_DSN.

func PgOpenTest(ctx context.Context) (*bun.DB, error) {
	return PgOpen(ctx, TestEnvDsn())
}

func TestEnvDsn() string {
	return os.Getenv("PGDB_DSN")
}

func SetTestEnvDsn(dsn string) {
	os.Setenv("PGDB_DSN", dsn)
}

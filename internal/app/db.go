package app

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/tournament-dashboard/internal/config"
)

const (
	maxTracedStatementRunes = 512
	preparedBinaryParam     = "disable_prepared_binary_result"
)

// OpenDB opens a traced postgres handle for cfg.DBURL.
func OpenDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := DSN(cfg)

	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(traceStatement),
	}
	if name := databaseName(dsn); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}

// DSN returns cfg.DBURL with the configured driver flags applied.
// Key/value style DSNs are returned as-is.
func DSN(cfg config.Config) string {
	raw := strings.TrimSpace(cfg.DBURL)
	if !cfg.DBDisablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	params := parsed.Query()
	if params.Has(preparedBinaryParam) {
		return raw
	}
	params.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = params.Encode()
	return parsed.String()
}

// databaseName reads the database from either a postgres:// URL or a
// key/value DSN.
func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if parsed, err := url.Parse(dsn); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	for _, field := range strings.Fields(dsn) {
		key, value, ok := strings.Cut(field, "=")
		if ok && key == "dbname" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

// traceStatement collapses whitespace so multi-line statements read as one
// span attribute, capped at maxTracedStatementRunes.
func traceStatement(query string) string {
	flat := strings.Join(strings.Fields(query), " ")
	runes := []rune(flat)
	if len(runes) <= maxTracedStatementRunes {
		return flat
	}
	return string(runes[:maxTracedStatementRunes]) + "..."
}

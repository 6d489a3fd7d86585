package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/psqlbuilder"
)

//go:embed *.sql
var files embed.FS

var (
	// ErrReadMigrations ошибка чтения встроенных файлов
	ErrReadMigrations = errors.New("migrations: failed to read migration files")

	// ErrApply ошибка применения миграции
	ErrApply = errors.New("migrations: failed to apply migration")
)

const createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    VARCHAR(255) PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migration один SQL файл
type Migration struct {
	Version string
	SQL     string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// TxRunner выполняет функцию в транзакции
type TxRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// List возвращает встроенные миграции в порядке имен файлов
func List() ([]Migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMigrations, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	result := make([]Migration, 0, len(names))
	for _, name := range names {
		body, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadMigrations, name, err)
		}
		result = append(result, Migration{Version: strings.TrimSuffix(name, ".sql"), SQL: string(body)})
	}
	return result, nil
}

// Up применяет все неприменённые миграции, каждую в своей транзакции
// Возвращает список применённых версий
func Up(ctx context.Context, db dbmetrics.DBExecutor, tx TxRunner, logger Logger) ([]string, error) {
	if _, err := db.ExecContext(ctx, createVersionsTable); err != nil {
		return nil, fmt.Errorf("%w: create schema_migrations: %v", ErrApply, err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return nil, err
	}

	all, err := List()
	if err != nil {
		return nil, err
	}

	done := make([]string, 0)
	for _, m := range all {
		if _, ok := applied[m.Version]; ok {
			continue
		}

		err := tx.Do(ctx, func(ctx context.Context) error {
			executor := dbmetrics.GetExecutor(ctx, db)
			if _, err := executor.ExecContext(ctx, m.SQL); err != nil {
				return err
			}

			query, args, err := psqlbuilder.Insert("schema_migrations").
				Columns("version").
				Values(m.Version).
				ToSql()
			if err != nil {
				return err
			}
			_, err = executor.ExecContext(ctx, query, args...)
			return err
		})
		if err != nil {
			return done, fmt.Errorf("%w: %s: %v", ErrApply, m.Version, err)
		}

		logger.Info("Migration %s applied", m.Version)
		done = append(done, m.Version)
	}

	return done, nil
}

func appliedVersions(ctx context.Context, db dbmetrics.DBExecutor) (map[string]struct{}, error) {
	query, args, err := psqlbuilder.Select("version").From("schema_migrations").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: build query: %v", ErrApply, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: read schema_migrations: %v", ErrApply, err)
	}
	defer rows.Close()

	versions := make(map[string]struct{})
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%w: scan version: %v", ErrApply, err)
		}
		versions[v] = struct{}{}
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: rows error: %v", ErrApply, err)
	}
	return versions, nil
}

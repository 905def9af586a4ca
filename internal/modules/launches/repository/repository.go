package repository

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/types"
)

//go:embed sql/list-launches.sql
var listLaunchesSQL string

//go:embed sql/payload-bounds.sql
var payloadBoundsSQL string

//go:embed sql/count-launches.sql
var countLaunchesSQL string

//go:embed sql/delete-launches.sql
var deleteLaunchesSQL string

//go:embed sql/insert-launch.sql
var insertLaunchSQL string

//go:embed sql/insert-import.sql
var insertImportSQL string

//go:embed sql/get-last-import.sql
var getLastImportSQL string

// ErrEmptyDataset is returned by PayloadBounds when no launches are stored.
var ErrEmptyDataset = errors.New("launch dataset is empty")

type LaunchRepository interface {
	ListLaunches() ([]types.LaunchRecord, error)
	PayloadBounds() (min float64, max float64, err error)
	CountLaunches() (int, error)
	ReplaceLaunches(source string, records []types.LaunchRecord) error
	GetLastImport() (*types.DatasetImport, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) LaunchRepository {
	return &repositoryImpl{db: db}
}

// ListLaunches returns every stored launch in dataset order.
func (r *repositoryImpl) ListLaunches() ([]types.LaunchRecord, error) {
	rows, err := r.db.Query(listLaunchesSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close launches rows", "error", err)
		}
	}()
	var out []types.LaunchRecord
	for rows.Next() {
		var rec types.LaunchRecord
		if err := rows.Scan(
			&rec.FlightNumber,
			&rec.LaunchSite,
			&rec.PayloadMassKg,
			&rec.BoosterVersion,
			&rec.BoosterVersionCategory,
			&rec.Class,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) PayloadBounds() (float64, float64, error) {
	var n int
	var min, max float64
	if err := r.db.QueryRow(payloadBoundsSQL).Scan(&n, &min, &max); err != nil {
		return 0, 0, err
	}
	if n == 0 {
		return 0, 0, ErrEmptyDataset
	}
	return min, max, nil
}

func (r *repositoryImpl) CountLaunches() (int, error) {
	var n int
	err := r.db.QueryRow(countLaunchesSQL).Scan(&n)
	return n, err
}

// ReplaceLaunches swaps the stored dataset for records in one transaction and
// records the import. Row ids follow slice order so ListLaunches keeps it.
func (r *repositoryImpl) ReplaceLaunches(source string, records []types.LaunchRecord) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("rollback launch import", "error", rbErr)
			}
		}
	}()

	if _, err = tx.Exec(deleteLaunchesSQL); err != nil {
		return fmt.Errorf("clear launches: %w", err)
	}

	stmt, err := tx.Prepare(insertLaunchSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			slog.Error("close insert statement", "error", err)
		}
	}()

	for i, rec := range records {
		if _, err = stmt.Exec(
			i+1,
			rec.FlightNumber,
			rec.LaunchSite,
			rec.PayloadMassKg,
			rec.BoosterVersion,
			rec.BoosterVersionCategory,
			int(rec.Class),
		); err != nil {
			return fmt.Errorf("insert launch %d: %w", i+1, err)
		}
	}

	if _, err = tx.Exec(insertImportSQL, source, len(records)); err != nil {
		return fmt.Errorf("record import: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetLastImport returns the most recent import, or nil if nothing was imported.
func (r *repositoryImpl) GetLastImport() (*types.DatasetImport, error) {
	var imp types.DatasetImport
	var ts string
	err := r.db.QueryRow(getLastImportSQL).Scan(&imp.Source, &imp.RowCount, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("parse imported_at %q: %w", ts, err)
	}
	imp.ImportedAt = t
	return &imp, nil
}

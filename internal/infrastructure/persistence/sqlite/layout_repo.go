package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/domain/repository"
	"github.com/bnema/dockgrid/internal/logging"
)

const (
	upsertLayoutQuery = `
INSERT INTO layouts (name, version, layout_json, group_count, panel_count, saved_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    version = excluded.version,
    layout_json = excluded.layout_json,
    group_count = excluded.group_count,
    panel_count = excluded.panel_count,
    saved_at = excluded.saved_at`

	getLayoutQuery = `
SELECT name, version, layout_json, group_count, panel_count, saved_at
FROM layouts WHERE name = ?`

	listLayoutsQuery = `
SELECT name, version, group_count, panel_count, saved_at
FROM layouts ORDER BY saved_at DESC, name ASC`

	deleteLayoutQuery = `DELETE FROM layouts WHERE name = ?`
)

type layoutRepo struct {
	db *sql.DB
}

// NewLayoutRepository creates a layout repository on db.
func NewLayoutRepository(db *sql.DB) repository.LayoutRepository {
	return &layoutRepo{db: db}
}

// Save inserts or replaces a layout record.
func (r *layoutRepo) Save(ctx context.Context, record *entity.LayoutRecord) error {
	log := logging.FromContext(ctx)
	if record == nil {
		return errors.New("layout record cannot be nil")
	}
	if record.Layout == nil {
		return fmt.Errorf("layout %q has no layout data", record.Name)
	}

	layoutJSON, err := json.Marshal(record.Layout)
	if err != nil {
		log.Error().Err(err).Str("name", record.Name).Msg("failed to marshal layout")
		return fmt.Errorf("marshal layout %q: %w", record.Name, err)
	}

	savedAt := record.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	log.Debug().
		Str("name", record.Name).
		Int("group_count", record.GroupCount).
		Int("panel_count", record.PanelCount).
		Msg("saving layout")

	if _, err := r.db.ExecContext(ctx, upsertLayoutQuery,
		record.Name,
		record.Version,
		string(layoutJSON),
		record.GroupCount,
		record.PanelCount,
		savedAt.UTC(),
	); err != nil {
		return fmt.Errorf("upsert layout %q: %w", record.Name, err)
	}
	return nil
}

// Get returns the record stored under name.
func (r *layoutRepo) Get(ctx context.Context, name string) (*entity.LayoutRecord, error) {
	var (
		record     entity.LayoutRecord
		layoutJSON string
	)
	err := r.db.QueryRowContext(ctx, getLayoutQuery, name).Scan(
		&record.Name,
		&record.Version,
		&layoutJSON,
		&record.GroupCount,
		&record.PanelCount,
		&record.SavedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrLayoutNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("query layout %q: %w", name, err)
	}

	var layout entity.SerializedLayout
	if err := json.Unmarshal([]byte(layoutJSON), &layout); err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("name", name).Msg("failed to unmarshal stored layout")
		return nil, fmt.Errorf("unmarshal layout %q: %w", name, err)
	}
	record.Layout = &layout
	return &record, nil
}

// List returns every stored layout, most recently saved first.
func (r *layoutRepo) List(ctx context.Context) ([]entity.LayoutSummary, error) {
	rows, err := r.db.QueryContext(ctx, listLayoutsQuery)
	if err != nil {
		return nil, fmt.Errorf("query layouts: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			logging.FromContext(ctx).Debug().Err(cerr).Msg("failed to close layout rows")
		}
	}()

	var out []entity.LayoutSummary
	for rows.Next() {
		var s entity.LayoutSummary
		if err := rows.Scan(&s.Name, &s.Version, &s.GroupCount, &s.PanelCount, &s.SavedAt); err != nil {
			return nil, fmt.Errorf("scan layout row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate layout rows: %w", err)
	}
	return out, nil
}

// Delete removes the record stored under name.
func (r *layoutRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, deleteLayoutQuery, name)
	if err != nil {
		return fmt.Errorf("delete layout %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete layout %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", repository.ErrLayoutNotFound, name)
	}
	logging.FromContext(ctx).Debug().Str("name", name).Msg("layout deleted")
	return nil
}

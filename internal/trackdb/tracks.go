package trackdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/herd.report/internal/monitoring"
	"github.com/banshee-data/herd.report/internal/track"
)

// ImportRecord describes one Import call.
type ImportRecord struct {
	ImportID    string
	Source      string
	EntityCount int
	ImportedAt  string
}

// Import replaces the archived dataset with ds in a single transaction and
// returns the new import id. source is free text, typically the input path.
func (db *DB) Import(ctx context.Context, ds *track.Dataset, source string) (string, error) {
	importID := uuid.NewString()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM sound_levels",
		"DELETE FROM timestamps",
		"DELETE FROM positions",
		"DELETE FROM entities",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return "", fmt.Errorf("clear archive: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (import_id, source, entity_count) VALUES (?, ?, ?)`,
		importID, source, ds.Len()); err != nil {
		return "", fmt.Errorf("record import: %w", err)
	}

	ins, err := prepareInserts(ctx, tx)
	if err != nil {
		return "", err
	}
	defer ins.close()

	for seq, t := range ds.Tracks() {
		if err := ins.track(ctx, importID, seq, t); err != nil {
			return "", fmt.Errorf("insert %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit import: %w", err)
	}
	monitoring.Debugf("trackdb: import %s stored %d entities", importID, ds.Len())
	return importID, nil
}

type inserts struct {
	entity, position, timestamp, level *sql.Stmt
}

func prepareInserts(ctx context.Context, tx *sql.Tx) (*inserts, error) {
	var ins inserts
	var err error
	prep := func(q string) *sql.Stmt {
		if err != nil {
			return nil
		}
		var s *sql.Stmt
		s, err = tx.PrepareContext(ctx, q)
		return s
	}
	ins.entity = prep(`INSERT INTO entities (entity_id, seq, category, import_id) VALUES (?, ?, ?, ?)`)
	ins.position = prep(`INSERT INTO positions (entity_id, idx, x, y) VALUES (?, ?, ?, ?)`)
	ins.timestamp = prep(`INSERT INTO timestamps (entity_id, idx, t) VALUES (?, ?, ?)`)
	ins.level = prep(`INSERT INTO sound_levels (entity_id, idx, level) VALUES (?, ?, ?)`)
	if err != nil {
		ins.close()
		return nil, fmt.Errorf("prepare inserts: %w", err)
	}
	return &ins, nil
}

func (ins *inserts) close() {
	for _, s := range []*sql.Stmt{ins.entity, ins.position, ins.timestamp, ins.level} {
		if s != nil {
			s.Close()
		}
	}
}

func (ins *inserts) track(ctx context.Context, importID string, seq int, t *track.Track) error {
	if _, err := ins.entity.ExecContext(ctx, t.ID, seq, string(t.Category), importID); err != nil {
		return err
	}
	for i, p := range t.Positions {
		if _, err := ins.position.ExecContext(ctx, t.ID, i, p.X, p.Y); err != nil {
			return err
		}
	}
	for i, v := range t.Timestamps {
		if _, err := ins.timestamp.ExecContext(ctx, t.ID, i, v); err != nil {
			return err
		}
	}
	for i, v := range t.SoundLevels {
		if _, err := ins.level.ExecContext(ctx, t.ID, i, v); err != nil {
			return err
		}
	}
	return nil
}

// LoadDataset reads the archived dataset back in its original load order.
func (db *DB) LoadDataset(ctx context.Context) (*track.Dataset, error) {
	rows, err := db.QueryContext(ctx, `SELECT entity_id, category FROM entities ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}
	var tracks []*track.Track
	byID := make(map[string]*track.Track)
	for rows.Next() {
		var id, category string
		if err := rows.Scan(&id, &category); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		t := &track.Track{ID: id, Category: track.Category(category)}
		tracks = append(tracks, t)
		byID[id] = t
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entities: %w", err)
	}

	if err := db.loadSeries(ctx, `SELECT entity_id, x, y FROM positions ORDER BY entity_id, idx`, func(rows *sql.Rows) error {
		var id string
		var p track.Position
		if err := rows.Scan(&id, &p.X, &p.Y); err != nil {
			return err
		}
		if t := byID[id]; t != nil {
			t.Positions = append(t.Positions, p)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load positions: %w", err)
	}

	if err := db.loadSeries(ctx, `SELECT entity_id, t FROM timestamps ORDER BY entity_id, idx`, func(rows *sql.Rows) error {
		var id string
		var v float64
		if err := rows.Scan(&id, &v); err != nil {
			return err
		}
		if t := byID[id]; t != nil {
			t.Timestamps = append(t.Timestamps, v)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load timestamps: %w", err)
	}

	if err := db.loadSeries(ctx, `SELECT entity_id, level FROM sound_levels ORDER BY entity_id, idx`, func(rows *sql.Rows) error {
		var id string
		var v float64
		if err := rows.Scan(&id, &v); err != nil {
			return err
		}
		if t := byID[id]; t != nil {
			t.SoundLevels = append(t.SoundLevels, v)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load sound levels: %w", err)
	}

	return track.NewDataset(tracks...)
}

func (db *DB) loadSeries(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Imports lists every recorded import, newest first.
func (db *DB) Imports(ctx context.Context) ([]ImportRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT import_id, source, entity_count, imported_at FROM imports ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	var out []ImportRecord
	for rows.Next() {
		var r ImportRecord
		if err := rows.Scan(&r.ImportID, &r.Source, &r.EntityCount, &r.ImportedAt); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

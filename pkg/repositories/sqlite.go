package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbodonnell/tilearea/pkg/messages"
	"github.com/cbodonnell/tilearea/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteUpsertPlacement = `
INSERT OR REPLACE INTO placements (entity_id, area_id, timestamp, x, y, z, orientation)
VALUES (?, ?, ?, ?, ?, ?, ?);
`

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path and runs every migration in
// the migrations directory, in file name order.
func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	dir, err := os.ReadDir(migrations)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}

	for _, entry := range dir {
		if entry.IsDir() {
			continue
		}

		migrationPath := filepath.Join(migrations, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}

		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %s: %v", migrationPath, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveAreaSnapshot(ctx context.Context, snapshot *messages.AreaSnapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	for _, p := range placementsFromSnapshot(snapshot) {
		_, err = tx.ExecContext(ctx, sqliteUpsertPlacement, p.EntityID, p.AreaID, p.Timestamp, p.Position.X, p.Position.Y, p.Position.Z, p.Orientation)
		if err != nil {
			return fmt.Errorf("failed to save placement of entity %s: %v", p.EntityID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) SavePlacement(ctx context.Context, p *models.Placement) error {
	_, err := r.db.ExecContext(ctx, sqliteUpsertPlacement, p.EntityID, p.AreaID, p.Timestamp, p.Position.X, p.Position.Y, p.Position.Z, p.Orientation)
	if err != nil {
		return fmt.Errorf("failed to save placement of entity %s: %v", p.EntityID, err)
	}

	return nil
}

func (r *SQLiteRepository) LoadPlacement(ctx context.Context, entityID string) (*models.Placement, error) {
	q := `
	SELECT area_id, timestamp, x, y, z, orientation FROM placements WHERE entity_id = ?;
	`
	p := &models.Placement{EntityID: entityID}
	err := r.db.QueryRowContext(ctx, q, entityID).Scan(&p.AreaID, &p.Timestamp, &p.Position.X, &p.Position.Y, &p.Position.Z, &p.Orientation)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{EntityID: entityID}
		}
		return nil, fmt.Errorf("failed to scan placement: %v", err)
	}

	return p, nil
}

func (r *SQLiteRepository) ListPlacements(ctx context.Context, areaID string) ([]*models.Placement, error) {
	q := `
	SELECT entity_id, timestamp, x, y, z, orientation FROM placements WHERE area_id = ? ORDER BY entity_id;
	`
	rows, err := r.db.QueryContext(ctx, q, areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to query placements: %v", err)
	}
	defer rows.Close()

	placements := []*models.Placement{}
	for rows.Next() {
		p := &models.Placement{AreaID: areaID}
		if err := rows.Scan(&p.EntityID, &p.Timestamp, &p.Position.X, &p.Position.Y, &p.Position.Z, &p.Orientation); err != nil {
			return nil, fmt.Errorf("failed to scan placement: %v", err)
		}
		placements = append(placements, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read placements: %v", err)
	}

	return placements, nil
}

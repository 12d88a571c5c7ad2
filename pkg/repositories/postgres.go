package repositories

import (
	"context"
	"fmt"

	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/cbodonnell/tilearea/pkg/messages"
	"github.com/cbodonnell/tilearea/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
)

const postgresUpsertPlacement = `
INSERT INTO placements (entity_id, area_id, created_at, updated_at, x, y, z, orientation)
VALUES ($1, $2, $3, $3, $4, $5, $6, $7)
ON CONFLICT (entity_id) DO UPDATE SET area_id = $2, updated_at = $3, x = $4, y = $5, z = $6, orientation = $7;
`

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database at connStr.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}
	return &PostgresRepository{
		conn: conn,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return conn, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveAreaSnapshot(ctx context.Context, snapshot *messages.AreaSnapshot) error {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	placements := placementsFromSnapshot(snapshot)
	for _, p := range placements {
		batch.Queue(postgresUpsertPlacement, p.EntityID, p.AreaID, p.Timestamp, p.Position.X, p.Position.Y, p.Position.Z, p.Orientation)
	}
	results := tx.SendBatch(ctx, batch)
	for _, p := range placements {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to save placement of entity %s: %v", p.EntityID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *PostgresRepository) SavePlacement(ctx context.Context, p *models.Placement) error {
	_, err := r.conn.Exec(ctx, postgresUpsertPlacement, p.EntityID, p.AreaID, p.Timestamp, p.Position.X, p.Position.Y, p.Position.Z, p.Orientation)
	if err != nil {
		return fmt.Errorf("failed to save placement of entity %s: %v", p.EntityID, err)
	}

	return nil
}

func (r *PostgresRepository) LoadPlacement(ctx context.Context, entityID string) (*models.Placement, error) {
	q := `
	SELECT area_id, updated_at, x, y, z, orientation FROM placements WHERE entity_id = $1;
	`
	p := &models.Placement{EntityID: entityID}
	err := r.conn.QueryRow(ctx, q, entityID).Scan(&p.AreaID, &p.Timestamp, &p.Position.X, &p.Position.Y, &p.Position.Z, &p.Orientation)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &ErrNotFound{EntityID: entityID}
		}
		return nil, fmt.Errorf("failed to scan placement: %v", err)
	}

	return p, nil
}

func (r *PostgresRepository) ListPlacements(ctx context.Context, areaID string) ([]*models.Placement, error) {
	q := `
	SELECT entity_id, updated_at, x, y, z, orientation FROM placements WHERE area_id = $1 ORDER BY entity_id;
	`
	rows, err := r.conn.Query(ctx, q, areaID)
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

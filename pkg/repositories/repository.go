package repositories

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cbodonnell/tilearea/pkg/messages"
	"github.com/cbodonnell/tilearea/pkg/repositories/models"
)

type Repository interface {
	Close(ctx context.Context) error
	// SaveAreaSnapshot stores the placement of every body in the snapshot.
	SaveAreaSnapshot(ctx context.Context, snapshot *messages.AreaSnapshot) error
	SavePlacement(ctx context.Context, placement *models.Placement) error
	// LoadPlacement returns *ErrNotFound when the entity was never saved.
	LoadPlacement(ctx context.Context, entityID string) (*models.Placement, error)
	ListPlacements(ctx context.Context, areaID string) ([]*models.Placement, error)
}

// NewRepository opens the repository named by a database URL:
// sqlite://<file> or postgresql://... (postgres:// is accepted too).
func NewRepository(ctx context.Context, databaseURL string, migrations string) (Repository, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %v", err)
	}
	switch u.Scheme {
	case "sqlite":
		path := u.Host + u.Path
		if u.Opaque != "" {
			path = u.Opaque
		}
		return NewSQLiteRepository(ctx, path, migrations)
	case "postgresql", "postgres":
		return NewPostgresRepository(ctx, u.String())
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}

// placementsFromSnapshot lists the placements of the bodies in a snapshot.
func placementsFromSnapshot(snapshot *messages.AreaSnapshot) []*models.Placement {
	placements := make([]*models.Placement, 0, len(snapshot.Bodies))
	for _, body := range snapshot.Bodies {
		placements = append(placements, &models.Placement{
			EntityID:    body.EntityID,
			AreaID:      snapshot.AreaID,
			Timestamp:   snapshot.Timestamp,
			Position:    body.Position,
			Orientation: body.Orientation,
		})
	}
	return placements
}

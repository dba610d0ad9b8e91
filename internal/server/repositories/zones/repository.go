// Package zones declares the repository contract for zone records in
// persistent storage.
package zones

import (
	"context"

	"github.com/neogulmap/zonemap/internal/server/models"
)

type Repository interface {
	// Create inserts a new zone and returns it with its assigned ID.
	// A duplicate address yields common.ErrConflict.
	Create(ctx context.Context, zone *models.Zone) (*models.Zone, error)

	GetByID(ctx context.Context, id int) (*models.Zone, error)
	GetByAddress(ctx context.Context, address string) (*models.Zone, error)

	// List returns every zone, ordered by ID.
	List(ctx context.Context) ([]*models.Zone, error)

	// ListPage returns one page of zones ordered by ID along with the
	// total zone count.
	ListPage(ctx context.Context, limit, offset int) ([]*models.Zone, int, error)

	// Update rewrites all mutable columns of the zone identified by
	// zone.ID. A missing row yields common.ErrNotFound.
	Update(ctx context.Context, zone *models.Zone) (*models.Zone, error)

	// Delete removes the zone by ID. A missing row yields
	// common.ErrNotFound.
	Delete(ctx context.Context, id int) error
}

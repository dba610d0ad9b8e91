package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/neogulmap/zonemap/internal/common"
	"github.com/neogulmap/zonemap/internal/dbx"
	"github.com/neogulmap/zonemap/internal/logging"
	"github.com/neogulmap/zonemap/internal/server/cache"
	"github.com/neogulmap/zonemap/internal/server/models"
	"github.com/neogulmap/zonemap/internal/server/repositories/repomanager"
	"github.com/neogulmap/zonemap/internal/server/search"
)

// Upload carries the raw bytes and metadata of an incoming file.
type Upload struct {
	Data        []byte
	Name        string
	ContentType string
}

// ZonePage is one page of the zone listing.
type ZonePage struct {
	Zones []*models.Zone
	Total int
	Page  int
	Size  int
}

// ZoneService owns the zone record lifecycle. Record writes and image
// promotion are coordinated so the permanent image appears only after the
// database transaction commits.
type ZoneService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      *ImageService
	engine      *search.Engine
	cache       *cache.ZoneCache
	logger      logging.Logger
}

func NewZoneService(db *sql.DB, m repomanager.RepositoryManager, images *ImageService,
	engine *search.Engine, zc *cache.ZoneCache, logger logging.Logger) *ZoneService {
	return &ZoneService{
		db:          db,
		repomanager: m,
		images:      images,
		engine:      engine,
		cache:       zc,
		logger:      logger.With("component", "zones"),
	}
}

// Create inserts a new zone, staging the optional image first and
// promoting it only after the insert commits. A duplicate address yields
// common.ErrConflict and leaves no file behind.
func (s *ZoneService) Create(ctx context.Context, zone *models.Zone, image *Upload) (*models.Zone, error) {
	var tempName, finalName string

	if image != nil {
		var err error
		tempName, finalName, err = s.images.Stage(ctx, image.Data, KindZone, image.Name, image.ContentType)
		if err != nil {
			return nil, err
		}
		zone.Image = finalName
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Zones(tx).Create(ctx, zone)
		if err != nil {
			return err
		}
		zone = created
		return nil
	})

	if err != nil {
		if tempName != "" {
			s.images.Discard(ctx, tempName)
		}
		return nil, err
	}

	if tempName != "" {
		if err := s.images.Confirm(ctx, tempName, finalName); err != nil {
			s.logger.Error(ctx, "image promote failed after commit", "zone", zone.ID, "error", err.Error())
		}
	}

	s.logger.Info(ctx, "zone created", "id", zone.ID, "address", zone.Address)
	return zone, nil
}

// Get returns one zone by ID, consulting the cache first.
func (s *ZoneService) Get(ctx context.Context, id int) (*models.Zone, error) {
	if zone, ok := s.cache.GetZone(ctx, id); ok {
		return zone, nil
	}

	zone, err := s.repomanager.Zones(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetZone(ctx, zone)
	return zone, nil
}

// List returns every zone ordered by ID.
func (s *ZoneService) List(ctx context.Context) ([]*models.Zone, error) {
	return s.repomanager.Zones(s.db).List(ctx)
}

// ListPage returns one page of zones. Pages are 1-based; out-of-range
// parameters are clamped.
func (s *ZoneService) ListPage(ctx context.Context, page, size int) (*ZonePage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	zones, total, err := s.repomanager.Zones(s.db).ListPage(ctx, size, (page-1)*size)
	if err != nil {
		return nil, err
	}

	return &ZonePage{Zones: zones, Total: total, Page: page, Size: size}, nil
}

// Search runs the filter over the full zone set.
func (s *ZoneService) Search(ctx context.Context, f search.Filter) ([]models.Zone, error) {
	zones, err := s.repomanager.Zones(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]models.Zone, len(zones))
	for i, z := range zones {
		all[i] = *z
	}

	return s.engine.Search(all, f), nil
}

// Update merges the change set into the stored zone. A replacement image
// follows the staged lifecycle; the previous image is removed only after
// the new record is committed.
func (s *ZoneService) Update(ctx context.Context, id int, upd models.ZoneUpdate, image *Upload) (*models.Zone, error) {
	zone, err := s.repomanager.Zones(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImage := zone.Image
	zone.ApplyUpdate(upd)

	var tempName, finalName string
	if image != nil {
		tempName, finalName, err = s.images.Stage(ctx, image.Data, KindZone, image.Name, image.ContentType)
		if err != nil {
			return nil, err
		}
		zone.Image = finalName
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		updated, err := s.repomanager.Zones(tx).Update(ctx, zone)
		if err != nil {
			return err
		}
		zone = updated
		return nil
	})

	if err != nil {
		if tempName != "" {
			s.images.Discard(ctx, tempName)
		}
		return nil, err
	}

	if tempName != "" {
		if err := s.images.Confirm(ctx, tempName, finalName); err != nil {
			s.logger.Error(ctx, "image promote failed after commit", "zone", zone.ID, "error", err.Error())
		}
		if oldImage != "" && oldImage != zone.Image {
			s.images.Delete(ctx, oldImage)
		}
	}

	s.cache.Invalidate(ctx, id)
	s.logger.Info(ctx, "zone updated", "id", zone.ID)
	return zone, nil
}

// Delete removes the zone and, once the delete commits, its image.
func (s *ZoneService) Delete(ctx context.Context, id int) error {
	zone, err := s.repomanager.Zones(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Zones(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if zone.Image != "" {
		s.images.Delete(ctx, zone.Image)
	}

	s.cache.Invalidate(ctx, id)
	s.logger.Info(ctx, "zone deleted", "id", id)
	return nil
}

// GetByAddress returns one zone by its unique address.
func (s *ZoneService) GetByAddress(ctx context.Context, address string) (*models.Zone, error) {
	zone, err := s.repomanager.Zones(s.db).GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get by address: %w", err)
	}
	return zone, nil
}

package zones

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/neogulmap/zonemap/internal/common"
	"github.com/neogulmap/zonemap/internal/dbx"
	"github.com/neogulmap/zonemap/internal/server/models"
)

const pgUniqueViolation = "23505"

// PostgresRepository implements CRUD operations for zones over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const zoneColumns = `id, region, type, subtype, description, latitude, longitude, size, date, address, creator, image`

func scanZone(row interface{ Scan(dest ...any) error }) (*models.Zone, error) {
	z := &models.Zone{}
	err := row.Scan(&z.ID, &z.Region, &z.Type, &z.Subtype, &z.Description,
		&z.Latitude, &z.Longitude, &z.Size, &z.Date, &z.Address, &z.User, &z.Image)
	if err != nil {
		return nil, err
	}
	return z, nil
}

func (r *PostgresRepository) Create(ctx context.Context, zone *models.Zone) (*models.Zone, error) {
	query :=
		`INSERT INTO zones (region, type, subtype, description, latitude, longitude, size, date, address, creator, image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		zone.Region, zone.Type, zone.Subtype, zone.Description,
		zone.Latitude, zone.Longitude, zone.Size, zone.Date,
		zone.Address, zone.User, zone.Image).Scan(&zone.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return zone, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*models.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones WHERE id = $1`

	zone, err := scanZone(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return zone, nil
}

func (r *PostgresRepository) GetByAddress(ctx context.Context, address string) (*models.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones WHERE address = $1`

	zone, err := scanZone(r.db.QueryRowContext(ctx, query, address))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return zone, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectZones(rows)
}

func (r *PostgresRepository) ListPage(ctx context.Context, limit, offset int) ([]*models.Zone, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM zones`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + zoneColumns + ` FROM zones ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	zones, err := collectZones(rows)
	if err != nil {
		return nil, 0, err
	}
	return zones, total, nil
}

func (r *PostgresRepository) Update(ctx context.Context, zone *models.Zone) (*models.Zone, error) {
	query :=
		`UPDATE zones
		 SET region = $1, type = $2, subtype = $3, description = $4,
		     latitude = $5, longitude = $6, size = $7,
		     address = $8, creator = $9, image = $10
		 WHERE id = $11
		 `

	res, err := r.db.ExecContext(ctx, query,
		zone.Region, zone.Type, zone.Subtype, zone.Description,
		zone.Latitude, zone.Longitude, zone.Size,
		zone.Address, zone.User, zone.Image, zone.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrNotFound
	}

	return zone, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM zones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func collectZones(rows *sql.Rows) ([]*models.Zone, error) {
	var zones []*models.Zone
	for rows.Next() {
		zone, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		zones = append(zones, zone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return zones, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

package repomanager

import (
	"context"
	"database/sql"

	"github.com/neogulmap/zonemap/internal/dbx"
	"github.com/neogulmap/zonemap/internal/server/repositories/refreshtokens"
	"github.com/neogulmap/zonemap/internal/server/repositories/users"
	"github.com/neogulmap/zonemap/internal/server/repositories/zones"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Zones(db dbx.DBTX) zones.Repository
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}

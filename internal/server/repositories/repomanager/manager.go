package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/odyssey/internal/dbx"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/boundaries"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/configs"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/locations"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Locations(db dbx.DBTX) locations.Repository
	Boundaries(db dbx.DBTX) boundaries.Repository
	Configs(db dbx.DBTX) configs.Repository
}

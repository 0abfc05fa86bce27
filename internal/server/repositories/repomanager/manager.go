package repomanager

import (
	"context"
	"database/sql"

	"github.com/smartware/smartware-api/internal/dbx"
	"github.com/smartware/smartware-api/internal/server/repositories/authors"
	"github.com/smartware/smartware-api/internal/server/repositories/posts"
	"github.com/smartware/smartware-api/internal/server/repositories/tags"
	"github.com/smartware/smartware-api/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Authors(db dbx.DBTX) authors.Repository
	Posts(db dbx.DBTX) posts.Repository
	Tags(db dbx.DBTX) tags.Repository
}

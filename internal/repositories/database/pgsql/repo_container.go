package pgsql

import (
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pdv_backoffice/internal/repositories/collections"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every repository on a PostgreSQL-backed store.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return collections.NewRepositoryProvider(NewStore(dbPool))
}

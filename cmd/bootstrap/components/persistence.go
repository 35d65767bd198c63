package components

import (
	"claimflow/internal/infra/db"
	"claimflow/internal/infra/readstore"
	"claimflow/internal/infra/uow"
	"claimflow/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Claim
		fx.Annotate(
			readstore.NewClaimReadStore,
			fx.As(new(queries.ClaimReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork owns the transactional repositories; only the pool
		// needs wiring here
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

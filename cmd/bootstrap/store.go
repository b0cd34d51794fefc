package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"storeroom-api/internal/infra/db"
	"storeroom-api/internal/infra/memstore"
	"storeroom-api/internal/infra/pgstore"
	"storeroom-api/internal/pkg/config"
	"storeroom-api/internal/usecase/queries"
	"storeroom-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStore,
	),
)

type StoreOut struct {
	fx.Out

	UoW   shared.UnitOfWork
	Reads queries.BookingReadStore
}

// NewStore selects the booking store backend. Postgres serializes admission
// through serializable transactions; the memory driver serializes behind a
// mutex and ships a seeded demo catalog.
func NewStore(lc fx.Lifecycle, cfg config.Config) (StoreOut, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		slog.Info("using in-memory booking store with demo catalog")
		s := memstore.NewStore(memstore.DemoCatalog()...)
		return StoreOut{UoW: s, Reads: s}, nil

	case config.StoreDriverPostgres:
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return StoreOut{}, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				if cleanup != nil {
					cleanup()
				}
				return nil
			},
		})
		return StoreOut{
			UoW:   pgstore.NewPostgresUoW(pool),
			Reads: pgstore.NewBookingReadStore(pool),
		}, nil

	default:
		return StoreOut{}, fmt.Errorf("unknown store driver: %q", cfg.Store.Driver)
	}
}

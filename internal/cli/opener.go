package cli

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-quest/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-quest/internal/catalog"
	"github.com/comitanigiacomo/kanso-quest/internal/config"
	"github.com/comitanigiacomo/kanso-quest/internal/core/events"
	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
)

// SQLiteOpener opens the local database at cfg.SQLitePath for every command.
// Saves happen synchronously at the end of each operation.
func SQLiteOpener(cfg *config.Config, logger *zap.Logger) Opener {
	return func(ctx context.Context) (*services.GameService, func(), error) {
		store, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}

		cat, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		logger.Debug("quest catalog loaded", zap.Int("templates", cat.Size()))

		bus := events.NewBus()
		bus.SubscribeAll(events.NewLogSubscriber(logger))

		svc := services.NewGameService(services.GameDependencies{
			Store:   store,
			Catalog: cat,
			Config:  cfg.Game,
			Events:  bus,
			Logger:  logger,
			Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		})

		cleanup := func() {
			_ = svc.Close(context.Background(), LocalPlayerID)
			_ = store.Close()
			_ = logger.Sync()
		}
		return svc, cleanup, nil
	}
}

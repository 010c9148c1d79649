package service

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/contacts-web/internal/config"
	"gitlab.com/dirk.krummacker/contacts-web/internal/store"
	"gitlab.com/dirk.krummacker/contacts-web/internal/store/memstore"
	"gitlab.com/dirk.krummacker/contacts-web/internal/store/mongostore"
	"gitlab.com/dirk.krummacker/contacts-web/internal/store/mysqlstore"
)

// OpenStore connects to the configured backend.
func OpenStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case "mysql":
		sqlDB, err := mysqlstore.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		s, err := mysqlstore.New(sqlDB)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		log.Info().Str("backend", "mysql").Str("host", cfg.Database.Host).Msg("store opened")
		return s, nil
	case "memory":
		log.Warn().Str("backend", "memory").Msg("store opened, contacts are lost on restart")
		return memstore.New(), nil
	default:
		s, err := mongostore.Open(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		log.Info().Str("backend", "mongo").Str("database", cfg.Mongo.Database).
			Str("collection", cfg.Mongo.Collection).Msg("store opened")
		return s, nil
	}
}

package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"edupanel/internal/config"
	"edupanel/internal/infra"
)

var Module = fx.Options(
	fx.Provide(provideDB),
	fx.Invoke(migrateAndSeed),
)

func provideDB(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infra.OpenDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseDatabase(db)
			return nil
		},
	})
	return db, nil
}

func migrateAndSeed(db *gorm.DB, cfg *config.Config) error {
	if err := infra.Migrate(db); err != nil {
		return err
	}
	return infra.Seed(context.Background(), db, cfg)
}

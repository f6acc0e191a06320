package config_fx

import (
	"go.uber.org/fx"

	"edupanel/internal/config"
	"edupanel/pkg/utils"
)

var Module = fx.Provide(config.Load, provideTokenIssuer)

func provideTokenIssuer(cfg *config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.Session.Secret, cfg.Session.TTL)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"edupanel/cmd/fx/account_fx"
	"edupanel/cmd/fx/client_fx"
	"edupanel/cmd/fx/config_fx"
	"edupanel/cmd/fx/controllers_fx"
	"edupanel/cmd/fx/course_fx"
	"edupanel/cmd/fx/dashboard"
	"edupanel/cmd/fx/db_fx"
	"edupanel/cmd/fx/mail_fx"
	"edupanel/cmd/fx/payment_service_fx"
	"edupanel/cmd/fx/settings_fx"
	"edupanel/internal/api"
	"edupanel/internal/config"
	"edupanel/pkg/logger"
	"edupanel/pkg/metrics"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.Invoke(initObservability),

		db_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		client_fx.Module,
		course_fx.Module,
		payment_service_fx.Module,
		settings_fx.Module,
		dashboard.Module,
		controllers_fx.Module,

		fx.Provide(api.ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func initObservability(cfg *config.Config) {
	logger.Init(cfg.Logging)
	metrics.Init()
	gin.SetMode(gin.ReleaseMode)
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("HTTP server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

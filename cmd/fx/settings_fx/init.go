package settings_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"edupanel/internal/repositories"
	"edupanel/internal/services"
)

var Module = fx.Provide(
	provideSettingRepo, provideSettingService,
)

func provideSettingRepo(db *gorm.DB) repositories.SettingRepository {
	return repositories.NewSettingRepository(db)
}

func provideSettingService(settingRepo repositories.SettingRepository) services.SettingServiceInterface {
	return services.NewSettingService(settingRepo)
}

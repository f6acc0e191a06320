package controllers_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"edupanel/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewClientController),
	fx.Provide(controllers.NewEmployeeController),
	fx.Provide(controllers.NewPaymentController),
	fx.Provide(controllers.NewCourseController),
	fx.Provide(controllers.NewSettingsController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(provideHealthController))

func provideHealthController(db *gorm.DB) (*controllers.HealthController, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return controllers.NewHealthController(sqlDB), nil
}

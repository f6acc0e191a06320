package dashboard

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"edupanel/internal/repositories"
	"edupanel/internal/services"
)

var Module = fx.Provide(
	provideDashboardRepo, provideDashboardService,
)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(
	dashboardRepo repositories.DashboardRepository,
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
) services.DashboardService {
	return services.NewDashboardService(dashboardRepo, paymentRepo, userRepo)
}

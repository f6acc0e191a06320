package payment_service_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"edupanel/internal/repositories"
	"edupanel/internal/services"
)

var Module = fx.Provide(
	providePaymentRepo, providePaymentService,
)

func providePaymentRepo(db *gorm.DB) repositories.PaymentRepository {
	return repositories.NewPaymentRepository(db)
}

func providePaymentService(db *gorm.DB, clientRepo repositories.ClientRepository, paymentRepo repositories.PaymentRepository) services.PaymentService {
	return services.NewPaymentService(db, clientRepo, paymentRepo)
}

package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"edupanel/internal/repositories"
	"edupanel/internal/services"
	"edupanel/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideUserRepo)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAccountService(userRepo repositories.UserRepository, mailService services.IMailService, tokens *utils.TokenIssuer) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, mailService, tokens)
}

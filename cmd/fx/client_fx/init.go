package client_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"edupanel/internal/repositories"
	"edupanel/internal/services"
)

var Module = fx.Provide(
	provideClientRepo, provideClientService, provideEmployeeService,
)

func provideClientRepo(db *gorm.DB) repositories.ClientRepository {
	return repositories.NewClientRepository(db)
}

func provideClientService(
	db *gorm.DB,
	clientRepo repositories.ClientRepository,
	userRepo repositories.UserRepository,
	courseRepo repositories.CourseRepository,
	progressRepo repositories.ProgressRepository,
	mailService services.IMailService,
) services.ClientServiceInterface {
	return services.NewClientService(db, clientRepo, userRepo, courseRepo, progressRepo, mailService)
}

func provideEmployeeService(
	db *gorm.DB,
	clientRepo repositories.ClientRepository,
	userRepo repositories.UserRepository,
	mailService services.IMailService,
) services.EmployeeServiceInterface {
	return services.NewEmployeeService(db, clientRepo, userRepo, mailService)
}

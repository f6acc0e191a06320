package course_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"edupanel/internal/repositories"
	"edupanel/internal/services"
)

var Module = fx.Provide(
	provideCourseRepo, provideProgressRepo, provideCourseService, provideProgressService,
)

func provideCourseRepo(db *gorm.DB) repositories.CourseRepository {
	return repositories.NewCourseRepository(db)
}

func provideProgressRepo(db *gorm.DB) repositories.ProgressRepository {
	return repositories.NewProgressRepository(db)
}

func provideCourseService(
	courseRepo repositories.CourseRepository,
	clientRepo repositories.ClientRepository,
	progressRepo repositories.ProgressRepository,
) services.CourseServiceInterface {
	return services.NewCourseService(courseRepo, clientRepo, progressRepo)
}

func provideProgressService(
	db *gorm.DB,
	courseRepo repositories.CourseRepository,
	clientRepo repositories.ClientRepository,
	progressRepo repositories.ProgressRepository,
) services.ProgressServiceInterface {
	return services.NewProgressService(db, courseRepo, clientRepo, progressRepo)
}

package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"edupanel/internal/api/controllers"
	"edupanel/internal/config"
	"edupanel/internal/models/db_models"
	"edupanel/pkg/metrics"
	"edupanel/pkg/middleware"
	"edupanel/pkg/utils"
)

// Controllers groups every HTTP handler set the router mounts.
type Controllers struct {
	fx.In

	Account   *controllers.AccountController
	Client    *controllers.ClientController
	Employee  *controllers.EmployeeController
	Payment   *controllers.PaymentController
	Course    *controllers.CourseController
	Settings  *controllers.SettingsController
	Dashboard *controllers.DashboardController
	Health    *controllers.HealthController
}

type RouterParams struct {
	fx.In

	Config      *config.Config
	Tokens      *utils.TokenIssuer
	Controllers Controllers
}

func ProvideRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	r.Use(metrics.Instrument())
	r.Use(middleware.CORSMiddleware(p.Config.Server.AllowedOrigins))

	RegisterRoutes(r, p.Config, p.Tokens, p.Controllers)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, tokens *utils.TokenIssuer, c Controllers) {
	superAdmin := string(db_models.RoleSuperAdmin)
	clientAdmin := string(db_models.RoleClientAdmin)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	limited := limiter.Middleware()
	auth := middleware.JWTAuthMiddleware(tokens)

	r.GET("/healthz", c.Health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := r.Group("/api")

	// public
	apiGroup.POST("/auth/login", limited, c.Account.Login)
	apiGroup.POST("/forgot-password", limited, c.Account.ForgotPassword)
	apiGroup.POST("/set-password", limited, c.Account.SetPassword)

	signup := []gin.HandlerFunc{limited}
	signup = append(signup, middleware.SignupPolicy(cfg.Auth.ClientSignupPolicy == config.SignupPolicyPublic, tokens, superAdmin)...)
	signup = append(signup, c.Client.CreateClient)
	apiGroup.POST("/clients/create", signup...)

	// authenticated
	authed := apiGroup.Group("", auth)
	authed.GET("/auth/me", c.Account.Me)
	authed.GET("/courses", c.Course.ListCourses)
	authed.GET("/courses/:id", c.Course.GetCourse)
	authed.POST("/progress/update", c.Course.UpdateProgress)

	admin := authed.Group("", middleware.RoleMiddleware(superAdmin))
	admin.GET("/clients", c.Client.ListClients)
	admin.GET("/clients/:id", c.Client.GetClient)
	admin.DELETE("/clients/:id", c.Client.DeleteClient)
	admin.POST("/clients/:id/update-licenses", c.Client.UpdateLicenses)
	admin.GET("/licenses", c.Client.LicenseUsage)
	admin.GET("/users", c.Account.ListUsers)
	admin.GET("/payments", c.Payment.ListPayments)
	admin.POST("/courses", c.Course.CreateCourse)
	admin.GET("/settings", c.Settings.ListSettings)
	admin.POST("/settings", c.Settings.UpsertSetting)
	admin.GET("/emails", c.Settings.ListEmails)
	admin.GET("/admin/stats", c.Dashboard.GetAdminStats)

	company := authed.Group("", middleware.RoleMiddleware(clientAdmin))
	company.GET("/dashboard", c.Client.Dashboard)
	company.POST("/employees/create", c.Employee.CreateEmployee)
	company.POST("/payments/create", c.Payment.CreatePayment)
}

package controllers

import (
	"github.com/gin-gonic/gin"

	"edupanel/internal/services"
	"edupanel/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetAdminStats godoc
// @Summary Platform statistics
// @Description User counts by role, clients, license totals, simulated revenue, content and e-mail counts, plus the latest payments and users
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.AdminStats}
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/stats [get]
func (p *DashboardController) GetAdminStats(c *gin.Context) {
	stats, err := p.dashboardService.BuildAdminStats(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Dashboard data fetched successfully")
}

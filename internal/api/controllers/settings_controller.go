package controllers

import (
	"github.com/gin-gonic/gin"

	"edupanel/internal/models/request_models"
	"edupanel/internal/services"
	"edupanel/pkg/utils"
)

type SettingsController struct {
	settingService  services.SettingServiceInterface
	emailLogService services.EmailLogServiceInterface
}

func NewSettingsController(settingService services.SettingServiceInterface, emailLogService services.EmailLogServiceInterface) *SettingsController {
	return &SettingsController{settingService: settingService, emailLogService: emailLogService}
}

// ListSettings godoc
// @Summary List settings
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.SettingResponse}
// @Security BearerAuth
// @Router /api/settings [get]
func (s *SettingsController) ListSettings(c *gin.Context) {
	settings, err := s.settingService.ListSettings(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, settings, "")
}

// UpsertSetting godoc
// @Summary Create or update a setting
// @Description The value is coerced to the given type, the stored type, or a type inferred from the JSON value
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body request_models.UpsertSettingRequest true "Setting"
// @Success 200 {object} utils.APIResponse{data=response_models.SettingResponse}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/settings [post]
func (s *SettingsController) UpsertSetting(c *gin.Context) {
	var req request_models.UpsertSettingRequest
	if !bindJSON(c, &req) {
		return
	}

	setting, err := s.settingService.UpsertSetting(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, setting, "Setting saved")
}

// ListEmails godoc
// @Summary E-mail log
// @Description Outbound e-mail attempts, newest first
// @Tags Settings
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse{data=response_models.Page[response_models.EmailLogResponse]}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/emails [get]
func (s *SettingsController) ListEmails(c *gin.Context) {
	page, pageSize, ok := pageQuery(c)
	if !ok {
		return
	}

	emails, err := s.emailLogService.ListEmails(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, emails, "")
}

package controllers

import (
	"github.com/gin-gonic/gin"

	"edupanel/internal/models/request_models"
	"edupanel/internal/services"
	"edupanel/pkg/utils"
)

const forgotPasswordMessage = "If the email exists, a reset link has been sent"

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Login godoc
// @Summary Login
// @Description Authenticate with e-mail and password and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse{data=response_models.LoginResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Login successful")
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.UserResponse}
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/auth/me [get]
func (a *AccountController) Me(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}

	user, err := a.accountService.Me(c.Request.Context(), p.UserID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "")
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Sends a reset link if the e-mail belongs to an account. The response never reveals whether it does.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ForgotPasswordRequest true "Forgot password payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/forgot-password [post]
func (a *AccountController) ForgotPassword(c *gin.Context) {
	var req request_models.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	a.accountService.ForgotPassword(c.Request.Context(), req.Email)

	utils.RespondUntraced(c, forgotPasswordMessage)
}

// SetPassword godoc
// @Summary Set a password
// @Description Consumes an invitation or reset token and sets the account password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.SetPasswordRequest true "Set password payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/set-password [post]
func (a *AccountController) SetPassword(c *gin.Context) {
	var req request_models.SetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := a.accountService.SetPassword(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password has been set successfully")
}

// ListUsers godoc
// @Summary List all users
// @Tags Users
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.UserResponse}
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/users [get]
func (a *AccountController) ListUsers(c *gin.Context) {
	users, err := a.accountService.ListUsers(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, users, "Users retrieved successfully")
}

package controllers

import (
	"github.com/gin-gonic/gin"

	"edupanel/internal/models/request_models"
	"edupanel/internal/models/response_models"
	"edupanel/internal/services"
	"edupanel/pkg/utils"
)

type ClientController struct {
	clientService services.ClientServiceInterface
}

func NewClientController(clientService services.ClientServiceInterface) *ClientController {
	return &ClientController{clientService: clientService}
}

// CreateClient godoc
// @Summary Create a client
// @Description Creates a client company, its administrator account and its first course subscription, then e-mails the administrator a one-time password
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body request_models.CreateClientRequest true "Client payload"
// @Success 201 {object} utils.APIResponse{data=response_models.CreateClientResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/clients/create [post]
func (cc *ClientController) CreateClient(c *gin.Context) {
	var req request_models.CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := cc.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if !resp.EmailSent {
		utils.RespondCreated(c, resp, "Client created, but the welcome e-mail could not be sent")
		return
	}
	utils.RespondCreated(c, resp, "Client created successfully")
}

// ListClients godoc
// @Summary List clients
// @Tags Clients
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.ClientSummary}
// @Security BearerAuth
// @Router /api/clients [get]
func (cc *ClientController) ListClients(c *gin.Context) {
	clients, err := cc.clientService.ListClients(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, clients, "Clients retrieved successfully")
}

// GetClient godoc
// @Summary Client details
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} utils.APIResponse{data=response_models.ClientDetailResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/clients/{id} [get]
func (cc *ClientController) GetClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	client, err := cc.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, client, "")
}

// DeleteClient godoc
// @Summary Delete a client
// @Description Deletes the client with its users, their progress and its course subscriptions
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/clients/{id} [delete]
func (cc *ClientController) DeleteClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := cc.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Client deleted successfully")
}

// UpdateLicenses godoc
// @Summary Add licenses to a client
// @Tags Licenses
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body request_models.UpdateLicensesRequest true "Licenses to add"
// @Success 200 {object} utils.APIResponse{data=response_models.UpdateLicensesResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/clients/{id}/update-licenses [post]
func (cc *ClientController) UpdateLicenses(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req request_models.UpdateLicensesRequest
	if !bindJSON(c, &req) {
		return
	}

	count, err := cc.clientService.AddLicenses(c.Request.Context(), id, req.AdditionalLicenses)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.UpdateLicensesResponse{LicenseCount: count}, "Licenses updated successfully")
}

// LicenseUsage godoc
// @Summary License usage per client
// @Tags Licenses
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.LicenseUsageResponse}
// @Security BearerAuth
// @Router /api/licenses [get]
func (cc *ClientController) LicenseUsage(c *gin.Context) {
	usage, err := cc.clientService.LicenseUsage(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, usage, "")
}

// Dashboard godoc
// @Summary Client administrator dashboard
// @Tags Clients
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.ClientDashboard}
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/dashboard [get]
func (cc *ClientController) Dashboard(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}

	dash, err := cc.clientService.ClientDashboard(c.Request.Context(), p)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, dash, "")
}

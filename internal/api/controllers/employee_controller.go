package controllers

import (
	"github.com/gin-gonic/gin"

	"edupanel/internal/models/request_models"
	"edupanel/internal/models/response_models"
	"edupanel/internal/services"
	"edupanel/pkg/utils"
)

type EmployeeController struct {
	employeeService services.EmployeeServiceInterface
}

func NewEmployeeController(employeeService services.EmployeeServiceInterface) *EmployeeController {
	return &EmployeeController{employeeService: employeeService}
}

// CreateEmployee godoc
// @Summary Invite an employee
// @Description Creates a learner account on one of the client's free licenses and e-mails an invitation link
// @Tags Employees
// @Accept json
// @Produce json
// @Param request body request_models.CreateEmployeeRequest true "Employee payload"
// @Success 201 {object} utils.APIResponse{data=response_models.CreateEmployeeResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/employees/create [post]
func (e *EmployeeController) CreateEmployee(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	var req request_models.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	user, sent, err := e.employeeService.InviteEmployee(c.Request.Context(), p, req.Email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp := response_models.CreateEmployeeResponse{
		Employee: response_models.EmployeeResponse{
			ID:        user.ID.String(),
			Email:     user.Email,
			Pending:   true,
			CreatedAt: utils.FormatUnixRFC3339(user.CreatedAt),
		},
		EmailSent: sent,
	}
	if !sent {
		utils.RespondCreated(c, resp, "Employee created, but the invitation e-mail could not be sent")
		return
	}
	utils.RespondCreated(c, resp, "Employee invited successfully")
}

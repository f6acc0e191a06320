package controllers

import (
	"github.com/gin-gonic/gin"

	"edupanel/internal/models/request_models"
	"edupanel/internal/services"
	"edupanel/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// CreatePayment godoc
// @Summary Purchase a license package
// @Description Simulated checkout: adds the package's licenses to the caller's client and records a completed payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreatePaymentRequest true "Package to purchase"
// @Success 201 {object} utils.APIResponse{data=response_models.PurchaseResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/payments/create [post]
func (p *PaymentController) CreatePayment(c *gin.Context) {
	principal, ok := caller(c)
	if !ok {
		return
	}
	var request request_models.CreatePaymentRequest
	if !bindJSON(c, &request) {
		return
	}

	resp, err := p.paymentService.Purchase(c.Request.Context(), principal, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Payment completed successfully")
}

// ListPayments godoc
// @Summary List payments
// @Description All payments, newest first, with client name and purchaser e-mail
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.PaymentResponse}
// @Security BearerAuth
// @Router /api/payments [get]
func (p *PaymentController) ListPayments(c *gin.Context) {
	payments, err := p.paymentService.ListPayments(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, payments, "Payments retrieved successfully")
}

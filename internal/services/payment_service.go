package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	dbm "edupanel/internal/models/db_models"
	"edupanel/internal/models/request_models"
	"edupanel/internal/models/response_models"
	"edupanel/internal/repositories"
	"edupanel/pkg/metrics"
	"edupanel/pkg/utils"
)

type PaymentService interface {
	// Purchase simulates a license package checkout for the caller's client.
	Purchase(ctx context.Context, caller utils.Principal, req request_models.CreatePaymentRequest) (*response_models.PurchaseResponse, error)
	ListPayments(ctx context.Context) ([]response_models.PaymentResponse, error)
}

type paymentService struct {
	db          *gorm.DB
	clientRepo  repositories.ClientRepository
	paymentRepo repositories.PaymentRepository
}

func NewPaymentService(db *gorm.DB, clientRepo repositories.ClientRepository, paymentRepo repositories.PaymentRepository) PaymentService {
	return &paymentService{db: db, clientRepo: clientRepo, paymentRepo: paymentRepo}
}

func (p *paymentService) Purchase(ctx context.Context, caller utils.Principal, req request_models.CreatePaymentRequest) (*response_models.PurchaseResponse, error) {
	if caller.ClientID == nil {
		return nil, utils.ErrNoClientAssigned
	}
	pkg := dbm.PackageType(req.PackageType)
	if pkg == dbm.PackageCustom && req.CustomLicenses < 1 {
		return nil, utils.ErrCustomLicensesRequired
	}
	if pkg == dbm.PackageCustom && req.CustomLicenses > dbm.MaxCustomLicenses {
		return nil, utils.ErrCustomLicensesTooMany
	}
	licenses, amount, ok := pkg.Quote(req.CustomLicenses)
	if !ok {
		return nil, utils.ErrInvalidPackage
	}

	txID := utils.NewSimulatedTransactionID()
	payment := &dbm.Payment{
		ClientID:      *caller.ClientID,
		UserID:        caller.UserID,
		Amount:        amount,
		Currency:      dbm.DefaultCurrency,
		LicensesAdded: licenses,
		PackageType:   pkg,
		Status:        dbm.PaymentCompleted,
		TransactionID: &txID,
	}

	var newCount int
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clients := p.clientRepo.WithTx(tx)
		client, err := clients.FindByIDForUpdate(ctx, payment.ClientID)
		if err != nil {
			return fmt.Errorf("lock client: %w", err)
		}
		if client == nil {
			return utils.ErrClientNotFound
		}

		count, found, err := clients.AddLicenses(ctx, client.ID, licenses)
		if err != nil {
			return fmt.Errorf("add licenses: %w", err)
		}
		if !found {
			return utils.ErrClientNotFound
		}
		newCount = count

		if err := p.paymentRepo.WithTx(tx).Create(ctx, payment); err != nil {
			return fmt.Errorf("record payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.LicensesPurchased.WithLabelValues(string(pkg)).Add(float64(licenses))
	log.Info().
		Str("client_id", payment.ClientID.String()).
		Str("transaction_id", txID).
		Int("licenses", licenses).
		Msg("simulated purchase completed")

	return &response_models.PurchaseResponse{
		PaymentID:       payment.ID.String(),
		TransactionID:   txID,
		LicensesAdded:   licenses,
		NewLicenseCount: newCount,
		Amount:          amount,
		Currency:        payment.Currency,
	}, nil
}

func (p *paymentService) ListPayments(ctx context.Context) ([]response_models.PaymentResponse, error) {
	payments, err := p.paymentRepo.ListWithRefs(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	out := make([]response_models.PaymentResponse, 0, len(payments))
	for _, pay := range payments {
		out = append(out, toPaymentResponse(pay))
	}
	return out, nil
}

func toPaymentResponse(p dbm.PaymentWithRefs) response_models.PaymentResponse {
	resp := response_models.PaymentResponse{
		ID:            p.ID.String(),
		ClientName:    "N/A",
		UserEmail:     "N/A",
		Amount:        p.Amount,
		Currency:      p.Currency,
		LicensesAdded: p.LicensesAdded,
		PackageType:   string(p.PackageType),
		Status:        string(p.Status),
		TransactionID: "-",
		CreatedAt:     utils.FormatUnixRFC3339(p.CreatedAt),
	}
	if c, ok := p.Client.Resolved(); ok {
		resp.ClientName = c.Name
	}
	if u, ok := p.User.Resolved(); ok {
		resp.UserEmail = u.Email
	}
	if p.TransactionID != nil && *p.TransactionID != "" {
		resp.TransactionID = *p.TransactionID
	}
	return resp
}

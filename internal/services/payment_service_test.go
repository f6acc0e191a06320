package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edupanel/internal/models/db_models"
	"edupanel/internal/models/request_models"
	"edupanel/pkg/utils"
)

func TestPurchase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	course := env.createCourse(t, "Course", 10)
	acme := env.createClient(t, "Acme", "boss@acme.test", 2, course.ID.String())

	resp, err := env.paySvc.Purchase(ctx, acme, request_models.CreatePaymentRequest{PackageType: "10_LICENSES"})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.LicensesAdded)
	assert.Equal(t, 12, resp.NewLicenseCount)
	assert.Equal(t, int64(90), resp.Amount)
	assert.Equal(t, "USD", resp.Currency)
	assert.True(t, strings.HasPrefix(resp.TransactionID, "SIM-"))

	resp, err = env.paySvc.Purchase(ctx, acme, request_models.CreatePaymentRequest{PackageType: "CUSTOM", CustomLicenses: 7})
	require.NoError(t, err)
	assert.Equal(t, 19, resp.NewLicenseCount)
	assert.Equal(t, int64(70), resp.Amount)

	_, err = env.paySvc.Purchase(ctx, acme, request_models.CreatePaymentRequest{PackageType: "CUSTOM"})
	assert.ErrorIs(t, err, utils.ErrCustomLicensesRequired)
	_, err = env.paySvc.Purchase(ctx, acme, request_models.CreatePaymentRequest{PackageType: "3_LICENSES"})
	assert.ErrorIs(t, err, utils.ErrInvalidPackage)
	_, err = env.paySvc.Purchase(ctx, acme, request_models.CreatePaymentRequest{PackageType: "CUSTOM", CustomLicenses: 1e18})
	assert.ErrorIs(t, err, utils.ErrCustomLicensesTooMany)

	client, err := env.clients.FindByID(ctx, *acme.ClientID)
	require.NoError(t, err)
	assert.Equal(t, 19, client.LicenseCount, "rejected purchases leave the pool alone")

	payments, err := env.paySvc.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	for _, p := range payments {
		assert.Equal(t, "Acme", p.ClientName)
		assert.Equal(t, "boss@acme.test", p.UserEmail)
		assert.Equal(t, string(db_models.PaymentCompleted), p.Status)
	}
}

func TestPurchase_UnknownClientPersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	ghost := uuidOf(t, "5f0c7d8e-34a1-4c9b-9a55-1b2c3d4e5f60")
	caller := utils.Principal{UserID: ghost, Role: string(db_models.RoleClientAdmin), ClientID: &ghost}

	_, err := env.paySvc.Purchase(context.Background(), caller, request_models.CreatePaymentRequest{PackageType: "5_LICENSES"})
	require.ErrorIs(t, err, utils.ErrClientNotFound)

	var n int64
	require.NoError(t, env.db.Model(&db_models.Payment{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPurchase_PaymentFailureRollsBackLicenses(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	course := env.createCourse(t, "Course", 10)
	acme := env.createClient(t, "Acme", "boss@acme.test", 2, course.ID.String())

	require.NoError(t, env.db.Exec(`CREATE TRIGGER reject_payments BEFORE INSERT ON payments
BEGIN
	SELECT RAISE(ABORT, 'payments unavailable');
END;`).Error)

	_, err := env.paySvc.Purchase(ctx, acme, request_models.CreatePaymentRequest{PackageType: "20_LICENSES"})
	require.Error(t, err)

	client, err := env.clients.FindByID(ctx, *acme.ClientID)
	require.NoError(t, err)
	assert.Equal(t, 2, client.LicenseCount)
}

func TestListPayments_UnresolvedReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	course := env.createCourse(t, "Course", 10)
	acme := env.createClient(t, "Acme", "boss@acme.test", 2, course.ID.String())

	_, err := env.paySvc.Purchase(ctx, acme, request_models.CreatePaymentRequest{PackageType: "5_LICENSES"})
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&db_models.Payment{}).Where("1 = 1").Update("transaction_id", nil).Error)
	require.NoError(t, env.clientSvc.DeleteClient(ctx, *acme.ClientID))

	payments, err := env.paySvc.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "N/A", payments[0].ClientName)
	assert.Equal(t, "N/A", payments[0].UserEmail)
	assert.Equal(t, "-", payments[0].TransactionID)
}

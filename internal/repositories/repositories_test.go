package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edupanel/internal/infra/infratest"
	dbm "edupanel/internal/models/db_models"
	"edupanel/internal/repositories"
)

func strPtr(s string) *string { return &s }

func createClient(t *testing.T, repo repositories.ClientRepository, name string, licenses int) *dbm.Client {
	t.Helper()
	c := &dbm.Client{Name: name, AdminUserID: uuid.New(), LicenseCount: licenses}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func createUser(t *testing.T, repo repositories.UserRepository, email string, role dbm.Role, clientID *uuid.UUID) *dbm.User {
	t.Helper()
	u := &dbm.User{Email: email, Role: role, ClientID: clientID}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_ResetTokenIsSingleUse(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	u := createUser(t, users, "ann@acme.test", dbm.RoleUser, nil)
	now := time.Now().Unix()
	require.NoError(t, users.SetResetToken(ctx, u.ID, "hash-1", now+3600))

	found, err := users.FindByResetToken(ctx, "hash-1", now)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)

	ok, err := users.ConsumeResetToken(ctx, "hash-1", "bcrypt-hash", now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.ConsumeResetToken(ctx, "hash-1", "other-hash", now)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, stored.HasPassword())
	assert.Equal(t, "bcrypt-hash", *stored.PasswordHash)
	assert.Nil(t, stored.PasswordResetToken)
	assert.Nil(t, stored.PasswordResetExpires)
}

func TestUserRepository_ExpiredTokenIsRejected(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	u := createUser(t, users, "bob@acme.test", dbm.RoleUser, nil)
	now := time.Now().Unix()
	require.NoError(t, users.SetResetToken(ctx, u.ID, "hash-2", now-1))

	found, err := users.FindByResetToken(ctx, "hash-2", now)
	require.NoError(t, err)
	assert.Nil(t, found)

	ok, err := users.ConsumeResetToken(ctx, "hash-2", "bcrypt-hash", now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepository_FindMissingReturnsNil(t *testing.T) {
	db := infratest.NewDB(t)
	users := repositories.NewUserRepository(db)

	u, err := users.FindByEmail(context.Background(), "nobody@acme.test")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = users.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepository_ListWithClientsResolvesClient(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	users := repositories.NewUserRepository(db)
	clients := repositories.NewClientRepository(db)

	acme := createClient(t, clients, "Acme", 1)
	gone := uuid.New()
	createUser(t, users, "root@acme.test", dbm.RoleSuperAdmin, nil)
	createUser(t, users, "ann@acme.test", dbm.RoleUser, &acme.ID)
	createUser(t, users, "orphan@acme.test", dbm.RoleUser, &gone)

	rows, err := users.ListWithClients(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byEmail := map[string]dbm.UserWithClient{}
	for _, r := range rows {
		byEmail[r.Email] = r
	}

	c, ok := byEmail["ann@acme.test"].Client.Resolved()
	require.True(t, ok)
	assert.Equal(t, "Acme", c.Name)

	_, ok = byEmail["orphan@acme.test"].Client.Resolved()
	assert.False(t, ok)
	assert.Equal(t, gone, byEmail["orphan@acme.test"].Client.ID())
	_, ok = byEmail["root@acme.test"].Client.Resolved()
	assert.False(t, ok)
}

func TestClientRepository_AddLicenses(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	clients := repositories.NewClientRepository(db)

	acme := createClient(t, clients, "Acme", 2)

	n, found, err := clients.AddLicenses(ctx, acme.ID, 10)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 12, n)

	n, found, err = clients.AddLicenses(ctx, uuid.New(), 10)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, n)
}

func TestClientRepository_LicenseUsageCountsOnlyUsers(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	clients := repositories.NewClientRepository(db)
	users := repositories.NewUserRepository(db)

	beta := createClient(t, clients, "Beta", 1)
	acme := createClient(t, clients, "Acme", 3)
	createUser(t, users, "admin@acme.test", dbm.RoleClientAdmin, &acme.ID)
	createUser(t, users, "ann@acme.test", dbm.RoleUser, &acme.ID)
	createUser(t, users, "bob@acme.test", dbm.RoleUser, &acme.ID)

	rows, err := clients.LicenseUsage(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme", rows[0].Name)
	assert.Equal(t, acme.ID, rows[0].ClientID)
	assert.Equal(t, 3, rows[0].LicenseCount)
	assert.Equal(t, int64(2), rows[0].Used)

	assert.Equal(t, "Beta", rows[1].Name)
	assert.Equal(t, beta.ID, rows[1].ClientID)
	assert.Equal(t, int64(0), rows[1].Used)
}

func TestClientRepository_SubscribeIsIdempotent(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	clients := repositories.NewClientRepository(db)

	acme := createClient(t, clients, "Acme", 1)
	course := uuid.New()
	require.NoError(t, clients.Subscribe(ctx, acme.ID, course))
	require.NoError(t, clients.Subscribe(ctx, acme.ID, course))

	ids, err := clients.SubscribedCourseIDs(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{course}, ids)

	ok, err := clients.IsSubscribed(ctx, acme.ID, course)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, clients.DeleteSubscriptions(ctx, acme.ID))
	ok, err = clients.IsSubscribed(ctx, acme.ID, course)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProgressRepository_AddChapterIsSetAdd(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	progress := repositories.NewProgressRepository(db)

	userID, courseID, chapterID := uuid.New(), uuid.New(), uuid.New()

	p, err := progress.EnsureForUpdate(ctx, userID, courseID)
	require.NoError(t, err)
	again, err := progress.EnsureForUpdate(ctx, userID, courseID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)

	added, err := progress.AddChapter(ctx, p.ID, chapterID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = progress.AddChapter(ctx, p.ID, chapterID)
	require.NoError(t, err)
	assert.False(t, added)

	ids, err := progress.CompletedChapterIDs(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{chapterID}, ids)

	require.NoError(t, progress.AddScore(ctx, p.ID, 10))
	require.NoError(t, progress.AddScore(ctx, p.ID, 5))
	require.NoError(t, progress.MarkCompleted(ctx, p.ID))

	stored, err := progress.Find(ctx, userID, courseID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 15, stored.Score)
	assert.True(t, stored.IsCompleted)
}

func TestProgressRepository_DeleteByClient(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	clients := repositories.NewClientRepository(db)
	users := repositories.NewUserRepository(db)
	progress := repositories.NewProgressRepository(db)

	acme := createClient(t, clients, "Acme", 2)
	beta := createClient(t, clients, "Beta", 2)
	ann := createUser(t, users, "ann@acme.test", dbm.RoleUser, &acme.ID)
	bea := createUser(t, users, "bea@beta.test", dbm.RoleUser, &beta.ID)
	course := uuid.New()

	pa, err := progress.EnsureForUpdate(ctx, ann.ID, course)
	require.NoError(t, err)
	_, err = progress.AddChapter(ctx, pa.ID, uuid.New())
	require.NoError(t, err)
	pb, err := progress.EnsureForUpdate(ctx, bea.ID, course)
	require.NoError(t, err)
	_, err = progress.AddChapter(ctx, pb.ID, uuid.New())
	require.NoError(t, err)

	require.NoError(t, progress.DeleteByClient(ctx, acme.ID))

	gone, err := progress.Find(ctx, ann.ID, course)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var orphanChapters int64
	require.NoError(t, db.Model(&dbm.ProgressChapter{}).Where("progress_id = ?", pa.ID).Count(&orphanChapters).Error)
	assert.Zero(t, orphanChapters)

	kept, err := progress.Find(ctx, bea.ID, course)
	require.NoError(t, err)
	require.NotNil(t, kept)
	ids, err := progress.CompletedChapterIDs(ctx, pb.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestPaymentRepository_ListWithRefs(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	clients := repositories.NewClientRepository(db)
	users := repositories.NewUserRepository(db)
	payments := repositories.NewPaymentRepository(db)

	acme := createClient(t, clients, "Acme", 0)
	admin := createUser(t, users, "admin@acme.test", dbm.RoleClientAdmin, &acme.ID)

	older := &dbm.Payment{
		BaseModel:     dbm.BaseModel{CreatedAt: 100},
		ClientID:      acme.ID,
		UserID:        admin.ID,
		Amount:        90,
		Currency:      dbm.DefaultCurrency,
		LicensesAdded: 10,
		PackageType:   dbm.Package10,
		Status:        dbm.PaymentCompleted,
		TransactionID: strPtr("SIM-1"),
	}
	newer := &dbm.Payment{
		BaseModel:     dbm.BaseModel{CreatedAt: 200},
		ClientID:      uuid.New(),
		UserID:        uuid.New(),
		Amount:        50,
		Currency:      dbm.DefaultCurrency,
		LicensesAdded: 5,
		PackageType:   dbm.Package5,
		Status:        dbm.PaymentCompleted,
	}
	require.NoError(t, payments.Create(ctx, older))
	require.NoError(t, payments.Create(ctx, newer))

	rows, err := payments.ListWithRefs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, newer.ID, rows[0].ID)
	_, ok := rows[0].Client.Resolved()
	assert.False(t, ok)
	assert.Equal(t, newer.ClientID, rows[0].Client.ID())
	_, ok = rows[0].User.Resolved()
	assert.False(t, ok)

	c, ok := rows[1].Client.Resolved()
	require.True(t, ok)
	assert.Equal(t, "Acme", c.Name)
	u, ok := rows[1].User.Resolved()
	require.True(t, ok)
	assert.Equal(t, "admin@acme.test", u.Email)

	limited, err := payments.ListWithRefs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newer.ID, limited[0].ID)
}

func TestSettingRepository_UpsertAndCreateIfAbsent(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	settings := repositories.NewSettingRepository(db)

	first, err := settings.Upsert(ctx, &dbm.Setting{
		Key: "maintenanceMode", Value: dbm.StoredJSON(`false`), Type: dbm.SettingBoolean,
	})
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := settings.Upsert(ctx, &dbm.Setting{
		Key: "maintenanceMode", Value: dbm.StoredJSON(`true`), Type: dbm.SettingBoolean, Description: "toggle",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, dbm.BoolValue(true), second.Decoded())
	assert.Equal(t, "toggle", second.Description)

	require.NoError(t, settings.CreateIfAbsent(ctx, &dbm.Setting{
		Key: "maintenanceMode", Value: dbm.StoredJSON(`false`), Type: dbm.SettingBoolean,
	}))
	require.NoError(t, settings.CreateIfAbsent(ctx, &dbm.Setting{
		Key: "appName", Value: dbm.StoredJSON(`"Edupanel"`), Type: dbm.SettingString,
	}))

	all, err := settings.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "appName", all[0].Key)
	assert.Equal(t, "maintenanceMode", all[1].Key)
	assert.Equal(t, dbm.BoolValue(true), all[1].Decoded())

	missing, err := settings.FindByKey(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSettingRepository_NumbersReadBackAsJSONText(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	settings := repositories.NewSettingRepository(db)

	stored, err := settings.Upsert(ctx, &dbm.Setting{
		Key: "maxSeats", Value: dbm.StoredJSON(`42`), Type: dbm.SettingNumber,
	})
	require.NoError(t, err)
	assert.Equal(t, dbm.NumberValue(42), stored.Decoded())

	_, err = settings.Upsert(ctx, &dbm.Setting{
		Key: "ratio", Value: dbm.StoredJSON(`0.5`), Type: dbm.SettingJSON,
	})
	require.NoError(t, err)

	all, err := settings.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "42", all[0].Value.String())
	assert.Equal(t, dbm.JSONValue(`0.5`), all[1].Decoded())
}

func TestEmailLogRepository_ListPaginatesNewestFirst(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	logs := repositories.NewEmailLogRepository(db)

	for i, to := range []string{"a@x.test", "b@x.test", "c@x.test"} {
		require.NoError(t, logs.Create(ctx, &dbm.EmailLog{
			BaseModel: dbm.BaseModel{CreatedAt: int64(100 + i)},
			Recipient: to,
			Sender:    "noreply@edupanel.local",
			Subject:   "Welcome",
			Type:      dbm.EmailWelcome,
			Status:    dbm.EmailSent,
			Provider:  "log",
		}))
	}

	page1, total, err := logs.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page1, 2)
	assert.Equal(t, "c@x.test", page1[0].Recipient)
	assert.Equal(t, "b@x.test", page1[1].Recipient)

	page2, _, err := logs.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "a@x.test", page2[0].Recipient)
}

func TestDashboardRepository_Counts(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	clients := repositories.NewClientRepository(db)
	users := repositories.NewUserRepository(db)
	payments := repositories.NewPaymentRepository(db)
	logs := repositories.NewEmailLogRepository(db)
	dash := repositories.NewDashboardRepository(db)

	acme := createClient(t, clients, "Acme", 4)
	createClient(t, clients, "Beta", 6)
	admin := createUser(t, users, "admin@acme.test", dbm.RoleClientAdmin, &acme.ID)
	createUser(t, users, "ann@acme.test", dbm.RoleUser, &acme.ID)
	createUser(t, users, "root@edupanel.test", dbm.RoleSuperAdmin, nil)

	for _, status := range []dbm.PaymentStatus{dbm.PaymentCompleted, dbm.PaymentCompleted, dbm.PaymentFailed} {
		require.NoError(t, payments.Create(ctx, &dbm.Payment{
			ClientID: acme.ID, UserID: admin.ID, Amount: 50, Currency: dbm.DefaultCurrency,
			LicensesAdded: 5, PackageType: dbm.Package5, Status: status,
		}))
	}
	require.NoError(t, logs.Create(ctx, &dbm.EmailLog{
		Recipient: "ann@acme.test", Sender: "noreply@edupanel.local", Subject: "Invite",
		Type: dbm.EmailInvitation, Status: dbm.EmailFailed,
	}))

	roles, err := dash.CountUsersByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[dbm.Role]int64{dbm.RoleSuperAdmin: 1, dbm.RoleClientAdmin: 1, dbm.RoleUser: 1}, roles)

	n, err := dash.CountClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	total, used, err := dash.LicenseTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)
	assert.Equal(t, int64(1), used)

	paid, err := dash.CompletedPaymentTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, repositories.PaymentTotalsRow{Amount: 100, Licenses: 10, Count: 2}, paid)

	emails, err := dash.CountEmailsByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[dbm.EmailStatus]int64{dbm.EmailSent: 0, dbm.EmailFailed: 1}, emails)
}

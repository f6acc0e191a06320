package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"edupanel/internal/infra/infratest"
	"edupanel/internal/models/db_models"
	"edupanel/internal/models/request_models"
	"edupanel/internal/repositories"
	"edupanel/pkg/utils"
)

type sentMail struct {
	Kind  db_models.EmailType
	To    string
	Name  string
	Token string
}

// fakeMail records deliveries instead of sending them.
type fakeMail struct {
	mu   sync.Mutex
	fail bool
	sent []sentMail
}

func (f *fakeMail) record(m sentMail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp: connection refused")
	}
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeMail) SendWelcome(_ context.Context, to, clientName, tempPassword string) error {
	return f.record(sentMail{Kind: db_models.EmailWelcome, To: to, Name: clientName, Token: tempPassword})
}

func (f *fakeMail) SendInvitation(_ context.Context, to, companyName, token string) error {
	return f.record(sentMail{Kind: db_models.EmailInvitation, To: to, Name: companyName, Token: token})
}

func (f *fakeMail) SendPasswordReset(_ context.Context, to, token string) error {
	return f.record(sentMail{Kind: db_models.EmailPasswordReset, To: to, Token: token})
}

func (f *fakeMail) SetPasswordURL(token string) string { return "http://localhost:3000/set-password/" + token }

func (f *fakeMail) last(t *testing.T) sentMail {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

type testEnv struct {
	db        *gorm.DB
	mail      *fakeMail
	users     repositories.UserRepository
	clients   repositories.ClientRepository
	courses   repositories.CourseRepository
	progress  repositories.ProgressRepository
	payments  repositories.PaymentRepository
	accounts  *AccountService
	clientSvc ClientServiceInterface
	employees *employeeService
	courseSvc CourseServiceInterface
	progSvc   ProgressServiceInterface
	paySvc    PaymentService
	dashboard DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := infratest.NewDB(t)
	env := &testEnv{
		db:       db,
		mail:     &fakeMail{},
		users:    repositories.NewUserRepository(db),
		clients:  repositories.NewClientRepository(db),
		courses:  repositories.NewCourseRepository(db),
		progress: repositories.NewProgressRepository(db),
		payments: repositories.NewPaymentRepository(db),
	}
	tokens := utils.NewTokenIssuer("test-secret-0123456789", time.Hour)
	env.accounts = NewAccountService(env.users, env.mail, tokens).(*AccountService)
	env.clientSvc = NewClientService(db, env.clients, env.users, env.courses, env.progress, env.mail)
	env.employees = NewEmployeeService(db, env.clients, env.users, env.mail).(*employeeService)
	env.courseSvc = NewCourseService(env.courses, env.clients, env.progress)
	env.progSvc = NewProgressService(db, env.courses, env.clients, env.progress)
	env.paySvc = NewPaymentService(db, env.clients, env.payments)
	env.dashboard = NewDashboardService(repositories.NewDashboardRepository(db), env.payments, env.users)
	return env
}

func intPtr(v int) *int { return &v }

// createCourse adds a single-module course whose chapters are worth the given points.
func (e *testEnv) createCourse(t *testing.T, title string, points ...int) *db_models.Course {
	t.Helper()
	module := request_models.CreateModuleRequest{Title: "Module 1"}
	for i, p := range points {
		module.Chapters = append(module.Chapters, request_models.CreateChapterRequest{
			Title:  "Chapter " + string(rune('A'+i)),
			Points: intPtr(p),
		})
	}
	summary, err := e.courseSvc.CreateCourse(context.Background(), request_models.CreateCourseRequest{
		Title:   title,
		Modules: []request_models.CreateModuleRequest{module},
	})
	require.NoError(t, err)

	course, err := e.courses.FindByID(context.Background(), uuidOf(t, summary.ID))
	require.NoError(t, err)
	require.NotNil(t, course)
	return course
}

// createClient returns the client id and a principal for its CLIENT_ADMIN.
func (e *testEnv) createClient(t *testing.T, name, adminEmail string, licenses int, courseID string) utils.Principal {
	t.Helper()
	resp, err := e.clientSvc.CreateClient(context.Background(), request_models.CreateClientRequest{
		ClientName:   name,
		AdminEmail:   adminEmail,
		LicenseCount: licenses,
		CourseID:     courseID,
	})
	require.NoError(t, err)
	clientID := uuidOf(t, resp.ClientID)
	return utils.Principal{
		UserID:   uuidOf(t, resp.AdminID),
		Role:     string(db_models.RoleClientAdmin),
		ClientID: &clientID,
	}
}

func (e *testEnv) employeePrincipal(u *db_models.User) utils.Principal {
	return utils.Principal{UserID: u.ID, Role: string(db_models.RoleUser), ClientID: u.ClientID}
}

func uuidOf(t *testing.T, raw string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(raw)
	require.NoError(t, err)
	return id
}

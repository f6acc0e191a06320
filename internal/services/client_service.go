package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"edupanel/internal/models/db_models"
	"edupanel/internal/models/request_models"
	"edupanel/internal/models/response_models"
	"edupanel/internal/repositories"
	"edupanel/pkg/utils"
)

type ClientServiceInterface interface {
	CreateClient(ctx context.Context, req request_models.CreateClientRequest) (*response_models.CreateClientResponse, error)
	ListClients(ctx context.Context) ([]response_models.ClientSummary, error)
	GetClient(ctx context.Context, id uuid.UUID) (*response_models.ClientDetailResponse, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
	AddLicenses(ctx context.Context, id uuid.UUID, additional int) (int, error)
	LicenseUsage(ctx context.Context) ([]response_models.LicenseUsageResponse, error)
	ClientDashboard(ctx context.Context, caller utils.Principal) (*response_models.ClientDashboard, error)
}

type clientService struct {
	db           *gorm.DB
	clientRepo   repositories.ClientRepository
	userRepo     repositories.UserRepository
	courseRepo   repositories.CourseRepository
	progressRepo repositories.ProgressRepository
	mailService  IMailService
}

func NewClientService(
	db *gorm.DB,
	clientRepo repositories.ClientRepository,
	userRepo repositories.UserRepository,
	courseRepo repositories.CourseRepository,
	progressRepo repositories.ProgressRepository,
	mailService IMailService,
) ClientServiceInterface {
	return &clientService{
		db:           db,
		clientRepo:   clientRepo,
		userRepo:     userRepo,
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
		mailService:  mailService,
	}
}

// CreateClient creates the client, its CLIENT_ADMIN and the first course subscription
// in one transaction, then e-mails a one-time password. A failed e-mail does not undo
// the creation; it is reported through EmailSent.
func (s *clientService) CreateClient(ctx context.Context, req request_models.CreateClientRequest) (*response_models.CreateClientResponse, error) {
	email := NormalizeEmail(req.AdminEmail)
	courseID, err := utils.ParseUUID(req.CourseID)
	if err != nil {
		return nil, err
	}

	exists, err := s.courseRepo.ExistsByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("check course: %w", err)
	}
	if !exists {
		return nil, utils.ErrCourseNotFound
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check admin email: %w", err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	otp, err := utils.GenerateOneTimePassword()
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	passwordHash, err := utils.HashPassword(otp)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	clientID := uuid.New()
	admin := &db_models.User{
		Email:        email,
		PasswordHash: &passwordHash,
		Role:         db_models.RoleClientAdmin,
		ClientID:     &clientID,
	}
	admin.ID = uuid.New()
	client := &db_models.Client{
		Name:         req.ClientName,
		AdminUserID:  admin.ID,
		LicenseCount: req.LicenseCount,
	}
	client.ID = clientID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(ctx, admin); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.ErrEmailAlreadyExists
			}
			return fmt.Errorf("create admin: %w", err)
		}
		if err := s.clientRepo.WithTx(tx).Create(ctx, client); err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		if err := s.clientRepo.WithTx(tx).Subscribe(ctx, clientID, courseID); err != nil {
			return fmt.Errorf("subscribe course: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &response_models.CreateClientResponse{
		ClientID:  client.ID.String(),
		AdminID:   admin.ID.String(),
		EmailSent: true,
	}
	if err := s.mailService.SendWelcome(ctx, email, client.Name, otp); err != nil {
		log.Error().Err(err).Str("client_id", client.ID.String()).Msg("welcome e-mail failed")
		resp.EmailSent = false
	}
	return resp, nil
}

func (s *clientService) ListClients(ctx context.Context) ([]response_models.ClientSummary, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	out := make([]response_models.ClientSummary, 0, len(clients))
	for _, c := range clients {
		out = append(out, response_models.ClientSummary{ID: c.ID.String(), Name: c.Name})
	}
	return out, nil
}

func (s *clientService) GetClient(ctx context.Context, id uuid.UUID) (*response_models.ClientDetailResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	if client == nil {
		return nil, utils.ErrClientNotFound
	}

	courses, employees, usage, err := s.clientOverview(ctx, client)
	if err != nil {
		return nil, err
	}

	adminEmail := "N/A"
	admin, err := s.userRepo.FindByID(ctx, client.AdminUserID)
	if err != nil {
		return nil, fmt.Errorf("find client admin: %w", err)
	}
	if admin != nil {
		adminEmail = admin.Email
	}

	return &response_models.ClientDetailResponse{
		ID:                client.ID.String(),
		Name:              client.Name,
		AdminEmail:        adminEmail,
		CreatedAt:         utils.FormatUnixRFC3339(client.CreatedAt),
		Licenses:          usage,
		SubscribedCourses: courses,
		Employees:         employees,
	}, nil
}

func (s *clientService) ClientDashboard(ctx context.Context, caller utils.Principal) (*response_models.ClientDashboard, error) {
	if caller.ClientID == nil {
		return nil, utils.ErrNoClientAssigned
	}
	client, err := s.clientRepo.FindByID(ctx, *caller.ClientID)
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	if client == nil {
		return nil, utils.ErrClientNotFound
	}

	courses, employees, usage, err := s.clientOverview(ctx, client)
	if err != nil {
		return nil, err
	}
	return &response_models.ClientDashboard{
		Client:            response_models.ClientSummary{ID: client.ID.String(), Name: client.Name},
		Licenses:          usage,
		SubscribedCourses: courses,
		Employees:         employees,
	}, nil
}

func (s *clientService) clientOverview(ctx context.Context, client *db_models.Client) (
	[]response_models.CourseSummary, []response_models.EmployeeResponse, response_models.LicenseUsageResponse, error,
) {
	var usage response_models.LicenseUsageResponse

	courseIDs, err := s.clientRepo.SubscribedCourseIDs(ctx, client.ID)
	if err != nil {
		return nil, nil, usage, fmt.Errorf("subscribed courses: %w", err)
	}
	courses, err := s.courseRepo.ListByIDs(ctx, courseIDs)
	if err != nil {
		return nil, nil, usage, fmt.Errorf("load courses: %w", err)
	}
	summaries := make([]response_models.CourseSummary, 0, len(courses))
	for i := range courses {
		summaries = append(summaries, toCourseSummary(&courses[i]))
	}

	users, err := s.userRepo.ListByClient(ctx, client.ID, db_models.RoleUser)
	if err != nil {
		return nil, nil, usage, fmt.Errorf("list employees: %w", err)
	}
	employees := make([]response_models.EmployeeResponse, 0, len(users))
	for i := range users {
		employees = append(employees, toEmployeeResponse(&users[i]))
	}

	u := db_models.LicenseUsage{Total: client.LicenseCount, Used: int64(len(users))}
	usage = response_models.LicenseUsageResponse{
		ClientID:     client.ID.String(),
		ClientName:   client.Name,
		LicenseCount: u.Total,
		Used:         u.Used,
		Free:         u.Free(),
	}
	return summaries, employees, usage, nil
}

// DeleteClient removes the client with its users, their progress and its subscriptions.
func (s *clientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clients := s.clientRepo.WithTx(tx)
		client, err := clients.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("find client: %w", err)
		}
		if client == nil {
			return utils.ErrClientNotFound
		}

		if err := s.progressRepo.WithTx(tx).DeleteByClient(ctx, id); err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		if err := s.userRepo.WithTx(tx).DeleteByClient(ctx, id); err != nil {
			return fmt.Errorf("delete users: %w", err)
		}
		if err := clients.DeleteSubscriptions(ctx, id); err != nil {
			return fmt.Errorf("delete subscriptions: %w", err)
		}
		if _, err := clients.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
		return nil
	})
}

func (s *clientService) AddLicenses(ctx context.Context, id uuid.UUID, additional int) (int, error) {
	if additional < 1 {
		return 0, utils.NewValidationError("additionalLicenses must be at least 1")
	}

	var newCount int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, found, err := s.clientRepo.WithTx(tx).AddLicenses(ctx, id, additional)
		if err != nil {
			return fmt.Errorf("add licenses: %w", err)
		}
		if !found {
			return utils.ErrClientNotFound
		}
		newCount = count
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newCount, nil
}

func (s *clientService) LicenseUsage(ctx context.Context) ([]response_models.LicenseUsageResponse, error) {
	rows, err := s.clientRepo.LicenseUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("license usage: %w", err)
	}
	out := make([]response_models.LicenseUsageResponse, 0, len(rows))
	for _, r := range rows {
		u := db_models.LicenseUsage{Total: r.LicenseCount, Used: r.Used}
		out = append(out, response_models.LicenseUsageResponse{
			ClientID:     r.ClientID.String(),
			ClientName:   r.Name,
			LicenseCount: r.LicenseCount,
			Used:         r.Used,
			Free:         u.Free(),
		})
	}
	return out, nil
}

func toEmployeeResponse(u *db_models.User) response_models.EmployeeResponse {
	return response_models.EmployeeResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Pending:   !u.HasPassword(),
		CreatedAt: utils.FormatUnixRFC3339(u.CreatedAt),
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"edupanel/internal/models/db_models"
	"edupanel/internal/repositories"
	"edupanel/pkg/metrics"
	"edupanel/pkg/utils"
)

type EmployeeServiceInterface interface {
	// InviteEmployee consumes one free license of the caller's client.
	InviteEmployee(ctx context.Context, caller utils.Principal, email string) (*db_models.User, bool, error)
}

type employeeService struct {
	db          *gorm.DB
	clientRepo  repositories.ClientRepository
	userRepo    repositories.UserRepository
	mailService IMailService
	now         func() time.Time
}

func NewEmployeeService(
	db *gorm.DB,
	clientRepo repositories.ClientRepository,
	userRepo repositories.UserRepository,
	mailService IMailService,
) EmployeeServiceInterface {
	return &employeeService{
		db:          db,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		mailService: mailService,
		now:         time.Now,
	}
}

func (s *employeeService) InviteEmployee(ctx context.Context, caller utils.Principal, email string) (*db_models.User, bool, error) {
	if caller.ClientID == nil {
		return nil, false, utils.ErrNoClientAssigned
	}
	clientID := *caller.ClientID
	email = NormalizeEmail(email)

	token, hash, err := newSetPasswordToken()
	if err != nil {
		return nil, false, err
	}
	expires := s.now().Add(InvitationTokenTTL).Unix()

	var (
		client   *db_models.Client
		employee *db_models.User
	)
	// The client row lock serializes concurrent invitations so the
	// used <= license_count check cannot be raced.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)

		var err error
		client, err = s.clientRepo.WithTx(tx).FindByIDForUpdate(ctx, clientID)
		if err != nil {
			return fmt.Errorf("lock client: %w", err)
		}
		if client == nil {
			return utils.ErrClientNotFound
		}

		used, err := users.CountByClient(ctx, clientID, db_models.RoleUser)
		if err != nil {
			return fmt.Errorf("count employees: %w", err)
		}
		if used >= int64(client.LicenseCount) {
			return utils.ErrNoFreeLicenses
		}

		existing, err := users.FindByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if existing != nil {
			return utils.ErrEmailAlreadyExists
		}

		employee = &db_models.User{
			Email:                email,
			Role:                 db_models.RoleUser,
			ClientID:             &clientID,
			PasswordResetToken:   &hash,
			PasswordResetExpires: &expires,
		}
		if err := users.Create(ctx, employee); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.ErrEmailAlreadyExists
			}
			return fmt.Errorf("create employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	metrics.EmployeesInvited.Inc()

	sent := true
	if err := s.mailService.SendInvitation(ctx, email, client.Name, token); err != nil {
		log.Error().Err(err).Str("user_id", employee.ID.String()).Msg("invitation e-mail failed")
		sent = false
	}
	return employee, sent, nil
}

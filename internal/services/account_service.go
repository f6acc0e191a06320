package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"edupanel/internal/models/db_models"
	"edupanel/internal/models/request_models"
	"edupanel/internal/models/response_models"
	"edupanel/internal/repositories"
	"edupanel/pkg/utils"
)

const (
	InvitationTokenTTL    = 24 * time.Hour
	ResetTokenTTL         = time.Hour
	setPasswordTokenBytes = 32
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error)
	// ForgotPassword never reports whether the e-mail is known.
	ForgotPassword(ctx context.Context, email string)
	SetPassword(ctx context.Context, request request_models.SetPasswordRequest) error
	ListUsers(ctx context.Context) ([]response_models.UserResponse, error)
}

type AccountService struct {
	userRepo    repositories.UserRepository
	mailService IMailService
	tokens      *utils.TokenIssuer
	now         func() time.Time
}

func NewAccountService(userRepo repositories.UserRepository, mailService IMailService, tokens *utils.TokenIssuer) AccountServiceInterface {
	return &AccountService{
		userRepo:    userRepo,
		mailService: mailService,
		tokens:      tokens,
		now:         time.Now,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newSetPasswordToken returns the token to e-mail and the hash to store.
func newSetPasswordToken() (token, hash string, err error) {
	token, err = utils.GenerateSecureToken(setPasswordTokenBytes)
	if err != nil {
		return "", "", fmt.Errorf("generate token: %w", err)
	}
	return token, utils.HashToken(token), nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	user, err := a.userRepo.FindByEmail(ctx, NormalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if user == nil || !user.HasPassword() {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(*user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(user.ID, string(user.Role), user.ClientID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	withClient, err := a.userRepo.FindWithClient(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if withClient == nil {
		return nil, utils.ErrInvalidCredentials
	}
	return &response_models.LoginResponse{Token: token, User: toUserResponse(*withClient)}, nil
}

func (a *AccountService) Me(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error) {
	user, err := a.userRepo.FindWithClient(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	resp := toUserResponse(*user)
	return &resp, nil
}

func (a *AccountService) ForgotPassword(ctx context.Context, email string) {
	email = NormalizeEmail(email)
	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Msg("forgot password: lookup failed")
		return
	}
	if user == nil {
		return
	}

	token, hash, err := newSetPasswordToken()
	if err != nil {
		log.Error().Err(err).Msg("forgot password: token generation failed")
		return
	}
	expires := a.now().Add(ResetTokenTTL).Unix()
	if err := a.userRepo.SetResetToken(ctx, user.ID, hash, expires); err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("forgot password: storing token failed")
		return
	}

	if err := a.mailService.SendPasswordReset(ctx, user.Email, token); err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("forgot password: e-mail failed")
	}
}

func (a *AccountService) SetPassword(ctx context.Context, request request_models.SetPasswordRequest) error {
	tokenHash := utils.HashToken(strings.TrimSpace(request.Token))
	now := a.now().Unix()

	user, err := a.userRepo.FindByResetToken(ctx, tokenHash, now)
	if err != nil {
		return fmt.Errorf("find token: %w", err)
	}
	if user == nil {
		return utils.ErrInvalidResetToken
	}

	passwordHash, err := utils.HashPassword(request.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	consumed, err := a.userRepo.ConsumeResetToken(ctx, tokenHash, passwordHash, now)
	if err != nil {
		return fmt.Errorf("consume token: %w", err)
	}
	if !consumed {
		return utils.ErrInvalidResetToken
	}
	return nil
}

func (a *AccountService) ListUsers(ctx context.Context) ([]response_models.UserResponse, error) {
	users, err := a.userRepo.ListWithClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]response_models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u db_models.UserWithClient) response_models.UserResponse {
	resp := response_models.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      string(u.Role),
		Pending:   !u.HasPassword(),
		CreatedAt: utils.FormatUnixRFC3339(u.CreatedAt),
	}
	if u.ClientID != nil {
		id := u.ClientID.String()
		resp.ClientID = &id
		if client, ok := u.Client.Resolved(); ok {
			resp.ClientName = client.Name
		} else {
			resp.ClientName = "N/A"
		}
	}
	return resp
}

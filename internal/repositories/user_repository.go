package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edupanel/internal/models/db_models"
)

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository

	Create(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindWithClient(ctx context.Context, id uuid.UUID) (*db_models.UserWithClient, error)
	ListWithClients(ctx context.Context) ([]db_models.UserWithClient, error)
	Recent(ctx context.Context, limit int) ([]db_models.UserWithClient, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, role db_models.Role) ([]db_models.User, error)
	CountByClient(ctx context.Context, clientID uuid.UUID, role db_models.Role) (int64, error)
	DeleteByClient(ctx context.Context, clientID uuid.UUID) error

	SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt int64) error
	FindByResetToken(ctx context.Context, tokenHash string, now int64) (*db_models.User, error)
	ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now int64) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindWithClient(ctx context.Context, id uuid.UUID) (*db_models.UserWithClient, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	resolved, err := r.resolveClients(ctx, []db_models.User{*user})
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

func (r *userRepository) ListWithClients(ctx context.Context) ([]db_models.UserWithClient, error) {
	var users []db_models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return r.resolveClients(ctx, users)
}

func (r *userRepository) Recent(ctx context.Context, limit int) ([]db_models.UserWithClient, error) {
	var users []db_models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return r.resolveClients(ctx, users)
}

// resolveClients loads the clients of users in one query. Users whose client is
// missing (or who have none) get an unresolved reference.
func (r *userRepository) resolveClients(ctx context.Context, users []db_models.User) ([]db_models.UserWithClient, error) {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		if u.ClientID != nil {
			ids = append(ids, *u.ClientID)
		}
	}

	byID := make(map[uuid.UUID]*db_models.Client, len(ids))
	if len(ids) > 0 {
		var clients []db_models.Client
		if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&clients).Error; err != nil {
			return nil, err
		}
		for i := range clients {
			byID[clients[i].ID] = &clients[i]
		}
	}

	out := make([]db_models.UserWithClient, 0, len(users))
	for _, u := range users {
		item := db_models.UserWithClient{User: u}
		if u.ClientID != nil {
			item.Client = db_models.Lookup(*u.ClientID, byID)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *userRepository) ListByClient(ctx context.Context, clientID uuid.UUID, role db_models.Role) ([]db_models.User, error) {
	var users []db_models.User
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND role = ?", clientID, role).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepository) CountByClient(ctx context.Context, clientID uuid.UUID, role db_models.Role) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("client_id = ? AND role = ?", clientID, role).
		Count(&n).Error
	return n, err
}

func (r *userRepository) DeleteByClient(ctx context.Context, clientID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("client_id = ?", clientID).Delete(&db_models.User{}).Error
}

func (r *userRepository) SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt int64) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_reset_token":   tokenHash,
			"password_reset_expires": expiresAt,
		}).Error
}

func (r *userRepository) FindByResetToken(ctx context.Context, tokenHash string, now int64) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).
		Where("password_reset_token = ? AND password_reset_expires > ?", tokenHash, now).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ConsumeResetToken sets the password and clears the token in one conditional
// UPDATE. It reports false when no live token matched, so a replay fails.
func (r *userRepository) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("password_reset_token = ? AND password_reset_expires > ?", tokenHash, now).
		Updates(map[string]interface{}{
			"password_hash":          passwordHash,
			"password_reset_token":   nil,
			"password_reset_expires": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

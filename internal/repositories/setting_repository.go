package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"edupanel/internal/models/db_models"
)

type SettingRepository interface {
	FindByKey(ctx context.Context, key string) (*db_models.Setting, error)
	List(ctx context.Context) ([]db_models.Setting, error)
	// Upsert inserts or replaces the row with the same key and returns the stored row.
	Upsert(ctx context.Context, setting *db_models.Setting) (*db_models.Setting, error)
	// CreateIfAbsent leaves an existing key untouched.
	CreateIfAbsent(ctx context.Context, setting *db_models.Setting) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) FindByKey(ctx context.Context, key string) (*db_models.Setting, error) {
	var s db_models.Setting
	err := r.db.WithContext(ctx).First(&s, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *settingRepository) List(ctx context.Context) ([]db_models.Setting, error) {
	var settings []db_models.Setting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error
	return settings, err
}

func (r *settingRepository) Upsert(ctx context.Context, setting *db_models.Setting) (*db_models.Setting, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "type", "description", "updated_at"}),
		}).
		Create(setting).Error
	if err != nil {
		return nil, err
	}
	return r.FindByKey(ctx, setting.Key)
}

func (r *settingRepository) CreateIfAbsent(ctx context.Context, setting *db_models.Setting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(setting).Error
}

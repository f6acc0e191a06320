package repositories

import (
	"context"

	"gorm.io/gorm"

	"edupanel/internal/models/db_models"
)

type EmailLogRepository interface {
	Create(ctx context.Context, entry *db_models.EmailLog) error
	List(ctx context.Context, page, pageSize int) ([]db_models.EmailLog, int64, error)
}

type emailLogRepository struct {
	db *gorm.DB
}

func NewEmailLogRepository(db *gorm.DB) EmailLogRepository {
	return &emailLogRepository{db: db}
}

func (r *emailLogRepository) Create(ctx context.Context, entry *db_models.EmailLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *emailLogRepository) List(ctx context.Context, page, pageSize int) ([]db_models.EmailLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&db_models.EmailLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []db_models.EmailLog
	err := r.db.WithContext(ctx).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, total, err
}

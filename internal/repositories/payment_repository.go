package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edupanel/internal/models/db_models"
)

type PaymentRepository interface {
	WithTx(tx *gorm.DB) PaymentRepository

	Create(ctx context.Context, payment *db_models.Payment) error
	// ListWithRefs returns payments newest first; limit <= 0 means all.
	ListWithRefs(ctx context.Context, limit int) ([]db_models.PaymentWithRefs, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) WithTx(tx *gorm.DB) PaymentRepository {
	return &paymentRepository{db: tx}
}

func (r *paymentRepository) Create(ctx context.Context, payment *db_models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) ListWithRefs(ctx context.Context, limit int) ([]db_models.PaymentWithRefs, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var payments []db_models.Payment
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}

	clientIDs := make([]uuid.UUID, 0, len(payments))
	userIDs := make([]uuid.UUID, 0, len(payments))
	for _, p := range payments {
		clientIDs = append(clientIDs, p.ClientID)
		userIDs = append(userIDs, p.UserID)
	}

	clients := make(map[uuid.UUID]*db_models.Client)
	users := make(map[uuid.UUID]*db_models.User)
	if len(payments) > 0 {
		var cs []db_models.Client
		if err := r.db.WithContext(ctx).Where("id IN ?", clientIDs).Find(&cs).Error; err != nil {
			return nil, err
		}
		for i := range cs {
			clients[cs[i].ID] = &cs[i]
		}

		var us []db_models.User
		if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&us).Error; err != nil {
			return nil, err
		}
		for i := range us {
			users[us[i].ID] = &us[i]
		}
	}

	out := make([]db_models.PaymentWithRefs, 0, len(payments))
	for _, p := range payments {
		out = append(out, db_models.PaymentWithRefs{
			Payment: p,
			Client:  db_models.Lookup(p.ClientID, clients),
			User:    db_models.Lookup(p.UserID, users),
		})
	}
	return out, nil
}

package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"edupanel/internal/models/db_models"
)

type ClientRepository interface {
	WithTx(tx *gorm.DB) ClientRepository

	Create(ctx context.Context, client *db_models.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Client, error)
	// FindByIDForUpdate row-locks the client until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Client, error)
	List(ctx context.Context) ([]db_models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// AddLicenses atomically increments license_count; found is false for an unknown client.
	AddLicenses(ctx context.Context, id uuid.UUID, n int) (newCount int, found bool, err error)

	Subscribe(ctx context.Context, clientID, courseID uuid.UUID) error
	SubscribedCourseIDs(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error)
	IsSubscribed(ctx context.Context, clientID, courseID uuid.UUID) (bool, error)
	DeleteSubscriptions(ctx context.Context, clientID uuid.UUID) error

	LicenseUsage(ctx context.Context) ([]ClientUsageRow, error)
}

type ClientUsageRow struct {
	ClientID     uuid.UUID `gorm:"column:client_id"`
	Name         string    `gorm:"column:name"`
	LicenseCount int       `gorm:"column:license_count"`
	Used         int64     `gorm:"column:used"`
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) WithTx(tx *gorm.DB) ClientRepository {
	return &clientRepository{db: tx}
}

func (r *clientRepository) Create(ctx context.Context, client *db_models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Client, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *clientRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Client, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *clientRepository) find(q *gorm.DB, id uuid.UUID) (*db_models.Client, error) {
	var client db_models.Client
	err := q.First(&client, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]db_models.Client, error) {
	var clients []db_models.Client
	err := r.db.WithContext(ctx).Order("name ASC").Find(&clients).Error
	return clients, err
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&db_models.Client{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *clientRepository) AddLicenses(ctx context.Context, id uuid.UUID, n int) (int, bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.Client{}).
		Where("id = ?", id).
		Update("license_count", gorm.Expr("license_count + ?", n))
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, false, nil
	}

	var count int
	err := r.db.WithContext(ctx).
		Model(&db_models.Client{}).
		Where("id = ?", id).
		Pluck("license_count", &count).Error
	if err != nil {
		return 0, true, err
	}
	return count, true, nil
}

func (r *clientRepository) Subscribe(ctx context.Context, clientID, courseID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&db_models.ClientCourse{ClientID: clientID, CourseID: courseID}).Error
}

func (r *clientRepository) SubscribedCourseIDs(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&db_models.ClientCourse{}).
		Where("client_id = ?", clientID).
		Order("created_at ASC").
		Pluck("course_id", &ids).Error
	return ids, err
}

func (r *clientRepository) IsSubscribed(ctx context.Context, clientID, courseID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.ClientCourse{}).
		Where("client_id = ? AND course_id = ?", clientID, courseID).
		Count(&n).Error
	return n > 0, err
}

func (r *clientRepository) DeleteSubscriptions(ctx context.Context, clientID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("client_id = ?", clientID).Delete(&db_models.ClientCourse{}).Error
}

func (r *clientRepository) LicenseUsage(ctx context.Context) ([]ClientUsageRow, error) {
	var rows []ClientUsageRow
	err := r.db.WithContext(ctx).
		Table("clients c").
		Select("c.id AS client_id, c.name, c.license_count, COUNT(u.id) AS used").
		Joins("LEFT JOIN users u ON u.client_id = c.id AND u.role = ?", db_models.RoleUser).
		Group("c.id, c.name, c.license_count").
		Order("c.name ASC").
		Scan(&rows).Error
	return rows, err
}

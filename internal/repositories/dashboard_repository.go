package repositories

import (
	"context"

	"gorm.io/gorm"

	dbm "edupanel/internal/models/db_models"
)

type DashboardRepository interface {
	CountUsersByRole(ctx context.Context) (map[dbm.Role]int64, error)
	CountClients(ctx context.Context) (int64, error)
	LicenseTotals(ctx context.Context) (total int64, used int64, err error)
	CompletedPaymentTotals(ctx context.Context) (PaymentTotalsRow, error)
	CountCourses(ctx context.Context) (int64, error)
	CountSettings(ctx context.Context) (int64, error)
	CountEmailsByStatus(ctx context.Context) (map[dbm.EmailStatus]int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type roleCountRow struct {
	Role  dbm.Role `gorm:"column:role"`
	Count int64    `gorm:"column:count"`
}

type statusCountRow struct {
	Status dbm.EmailStatus `gorm:"column:status"`
	Count  int64           `gorm:"column:count"`
}

type PaymentTotalsRow struct {
	Amount   int64 `gorm:"column:amount"`
	Licenses int64 `gorm:"column:licenses"`
	Count    int64 `gorm:"column:count"`
}

// ---------- Counts ----------
func (r *dashboardRepository) CountUsersByRole(ctx context.Context) (map[dbm.Role]int64, error) {
	var rows []roleCountRow
	err := r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := map[dbm.Role]int64{dbm.RoleSuperAdmin: 0, dbm.RoleClientAdmin: 0, dbm.RoleUser: 0}
	for _, row := range rows {
		out[row.Role] = row.Count
	}
	return out, nil
}

func (r *dashboardRepository) CountClients(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Client{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) LicenseTotals(ctx context.Context) (int64, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&dbm.Client{}).
		Select("COALESCE(SUM(license_count), 0)").
		Scan(&total).Error; err != nil {
		return 0, 0, err
	}

	var used int64
	if err := r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Where("role = ? AND client_id IS NOT NULL", dbm.RoleUser).
		Count(&used).Error; err != nil {
		return 0, 0, err
	}
	return total, used, nil
}

func (r *dashboardRepository) CompletedPaymentTotals(ctx context.Context) (PaymentTotalsRow, error) {
	var row PaymentTotalsRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS amount, COALESCE(SUM(licenses_added), 0) AS licenses, COUNT(*) AS count").
		Where("status = ?", dbm.PaymentCompleted).
		Scan(&row).Error
	return row, err
}

func (r *dashboardRepository) CountCourses(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Course{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountSettings(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Setting{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountEmailsByStatus(ctx context.Context) (map[dbm.EmailStatus]int64, error) {
	var rows []statusCountRow
	err := r.db.WithContext(ctx).
		Model(&dbm.EmailLog{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := map[dbm.EmailStatus]int64{dbm.EmailSent: 0, dbm.EmailFailed: 0}
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

package services

import (
	"context"

	dbm "edupanel/internal/models/db_models"
	resp "edupanel/internal/models/response_models"
	"edupanel/internal/repositories"
)

const recentItems = 5

type DashboardService interface {
	BuildAdminStats(ctx context.Context) (*resp.AdminStats, error)
}

type dashboardService struct {
	repo        repositories.DashboardRepository
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
}

func NewDashboardService(
	repo repositories.DashboardRepository,
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
) DashboardService {
	return &dashboardService{repo: repo, paymentRepo: paymentRepo, userRepo: userRepo}
}

func (s *dashboardService) BuildAdminStats(ctx context.Context) (*resp.AdminStats, error) {
	// ---------- Core counts ----------
	roles, err := s.repo.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	users := make(map[string]int64, len(roles))
	for role, n := range roles {
		users[string(role)] = n
	}

	clients, err := s.repo.CountClients(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.repo.CountCourses(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.repo.CountSettings(ctx)
	if err != nil {
		return nil, err
	}

	// ---------- Licenses & revenue ----------
	totalLicenses, usedLicenses, err := s.repo.LicenseTotals(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.CompletedPaymentTotals(ctx)
	if err != nil {
		return nil, err
	}

	// ---------- E-mail ----------
	statuses, err := s.repo.CountEmailsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	emails := make(map[string]int64, len(statuses))
	for status, n := range statuses {
		emails[string(status)] = n
	}

	// ---------- Recent activity ----------
	payRows, err := s.paymentRepo.ListWithRefs(ctx, recentItems)
	if err != nil {
		return nil, err
	}
	recentPayments := make([]resp.PaymentResponse, 0, len(payRows))
	for _, p := range payRows {
		recentPayments = append(recentPayments, toPaymentResponse(p))
	}

	userRows, err := s.userRepo.Recent(ctx, recentItems)
	if err != nil {
		return nil, err
	}
	recentUsers := make([]resp.UserResponse, 0, len(userRows))
	for _, u := range userRows {
		recentUsers = append(recentUsers, toUserResponse(u))
	}

	return &resp.AdminStats{
		Users:    users,
		Clients:  clients,
		Licenses: resp.LicenseTotals{Total: totalLicenses, Used: usedLicenses},
		Revenue: resp.RevenueTotals{
			Amount:       revenue.Amount,
			Currency:     dbm.DefaultCurrency,
			LicensesSold: revenue.Licenses,
			Payments:     revenue.Count,
		},
		Courses:        courses,
		Settings:       settings,
		Emails:         emails,
		RecentPayments: recentPayments,
		RecentUsers:    recentUsers,
	}, nil
}

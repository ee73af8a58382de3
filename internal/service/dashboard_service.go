package service

import (
	"time"

	"github.com/lumina-finance/lumina-backend/internal/analytics"
	"github.com/lumina-finance/lumina-backend/internal/domain"
)

// DashboardService derives display-ready views from the stored collection.
// All aggregation happens in the analytics package; this service only
// fetches the snapshot and pins down "now".
type DashboardService struct {
	transactionRepo domain.TransactionRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(transactionRepo domain.TransactionRepository) *DashboardService {
	return &DashboardService{
		transactionRepo: transactionRepo,
	}
}

// GetTotals returns income, expense and balance over the whole collection
func (s *DashboardService) GetTotals() (analytics.Totals, error) {
	transactions, err := s.transactionRepo.GetAll()
	if err != nil {
		return analytics.Totals{}, err
	}
	return analytics.ComputeTotals(transactions), nil
}

// GetDailyTrend returns per-day income/expense sums for the trailing 30 days
func (s *DashboardService) GetDailyTrend() ([]analytics.TrendPoint, error) {
	transactions, err := s.transactionRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return analytics.DailyTrend(transactions, time.Now().UTC()), nil
}

// GetCategoryBreakdown returns expense totals per category, largest first
func (s *DashboardService) GetCategoryBreakdown() ([]analytics.CategoryTotal, error) {
	transactions, err := s.transactionRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return analytics.CategoryBreakdown(transactions), nil
}

package services

import (
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"fintrack/internal/currency"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// chartMonths is the length of the dashboard's income/expense time series.
const chartMonths = 6

// analyticsService derives dashboard metrics from accounts and the
// transaction ledger. All monetary outputs are normalized to USD through
// the injected rate table.
type analyticsService struct {
	db    *gorm.DB
	rates currency.Table
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB, rates currency.Table) AnalyticsServicer {
	return &analyticsService{db: db, rates: rates}
}

// GetDashboard computes the user's total balance, current-month income and
// expense, and a six-month income/expense series. The independent account
// and transaction reads fan out concurrently.
func (s *analyticsService) GetDashboard(userID string) (*Dashboard, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	historyStart := monthStart.AddDate(0, -(chartMonths - 1), 0)

	var (
		accounts []models.Account
		history  []models.Transaction
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		if err := s.db.Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	g.Go(func() error {
		// The history window contains the current-month window, so one
		// query serves both aggregations.
		if err := s.db.Preload("Account").
			Where("user_id = ? AND date >= ?", userID, historyStart).
			Find(&history).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		AccountsCount: len(accounts),
		ChartData:     make([]MonthPoint, chartMonths),
	}

	for _, account := range accounts {
		dashboard.TotalBalance += s.rates.ToUSD(account.Balance, account.Currency)
	}

	// Buckets are keyed by year+month so a window spanning a year boundary
	// can never merge two months that share a short label.
	buckets := make(map[string]*MonthPoint, chartMonths)
	for i := 0; i < chartMonths; i++ {
		month := historyStart.AddDate(0, i, 0)
		point := &dashboard.ChartData[i]
		point.Name = month.Format("Jan")
		buckets[month.Format("2006-01")] = point
	}

	for _, tx := range history {
		amount := s.rates.ToUSD(tx.Amount, tx.Account.Currency)

		if !tx.Date.Before(monthStart) {
			switch tx.Type {
			case models.FlowIncome:
				dashboard.MonthlyIncome += amount
			case models.FlowExpense:
				dashboard.MonthlyExpense += amount
			}
		}

		point, ok := buckets[tx.Date.Format("2006-01")]
		if !ok {
			continue
		}
		switch tx.Type {
		case models.FlowIncome:
			point.Income += amount
		case models.FlowExpense:
			point.Expense += amount
		}
	}

	return dashboard, nil
}

package service

import (
	"sort"

	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/repository"
)

// LowStockThreshold is the fixed stock level below which a product is
// flagged on the dashboard.
const LowStockThreshold = 10

// ReportService derives every dashboard and report figure on demand from
// committed rows. It performs no writes.
type ReportService interface {
	GetSummary() (*Summary, error)
	GetMonthlyRollup() ([]MonthlyRow, error)
	GetTopFlavors() ([]repository.FlavorSales, error)
	GetTopCustomers() ([]repository.CustomerSales, error)
	GetLowStock() ([]model.Product, error)
	GetStockHistory() ([]model.StockAddition, error)
	GetSalesHistory() ([]model.Sale, error)
	GetInvestments() ([]model.Investment, error)
	GetActivityLogs() ([]model.ActivityLog, error)
}

// Summary is the financial overview. All money values are integer minor
// units (paise).
type Summary struct {
	TotalStock          int64 `json:"total_stock"`
	TotalRevenue        int64 `json:"total_revenue"`
	CostUsed            int64 `json:"cost_used"`
	TotalInvestment     int64 `json:"total_investment"`
	RemainingInvestment int64 `json:"remaining_investment"`
	Profit              int64 `json:"profit"`
}

// MonthlyRow is one calendar month of the revenue/cost rollup. Months
// present in only one series carry zero in the other.
type MonthlyRow struct {
	Month   string `json:"month"` // YYYY-MM
	Revenue int64  `json:"revenue"`
	Cost    int64  `json:"cost"`
	Profit  int64  `json:"profit"`
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) GetSummary() (*Summary, error) {
	totalStock, err := s.reportRepo.TotalStock()
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.reportRepo.TotalRevenue()
	if err != nil {
		return nil, err
	}
	costUsed, err := s.reportRepo.CostUsed()
	if err != nil {
		return nil, err
	}
	totalInvestment, err := s.reportRepo.TotalInvestment()
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalStock:          totalStock,
		TotalRevenue:        totalRevenue,
		CostUsed:            costUsed,
		TotalInvestment:     totalInvestment,
		RemainingInvestment: totalInvestment - costUsed,
		Profit:              totalRevenue - costUsed,
	}, nil
}

// GetMonthlyRollup buckets sale revenue and batch cost by calendar month.
// Bucketing happens here rather than in SQL so the grouping behaves the
// same on every backing store.
func (s *reportService) GetMonthlyRollup() ([]MonthlyRow, error) {
	revenueRows, err := s.reportRepo.RevenueByDate()
	if err != nil {
		return nil, err
	}
	costRows, err := s.reportRepo.CostByDate()
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlyRow)
	bucket := func(month string) *MonthlyRow {
		row, ok := byMonth[month]
		if !ok {
			row = &MonthlyRow{Month: month}
			byMonth[month] = row
		}
		return row
	}

	for _, r := range revenueRows {
		bucket(r.Date.Format("2006-01")).Revenue += r.Amount
	}
	for _, c := range costRows {
		bucket(c.Date.Format("2006-01")).Cost += c.Amount
	}

	rollup := make([]MonthlyRow, 0, len(byMonth))
	for _, row := range byMonth {
		row.Profit = row.Revenue - row.Cost
		rollup = append(rollup, *row)
	}
	sort.Slice(rollup, func(i, j int) bool { return rollup[i].Month < rollup[j].Month })

	return rollup, nil
}

func (s *reportService) GetTopFlavors() ([]repository.FlavorSales, error) {
	return s.reportRepo.TopFlavors()
}

func (s *reportService) GetTopCustomers() ([]repository.CustomerSales, error) {
	return s.reportRepo.TopCustomers()
}

func (s *reportService) GetLowStock() ([]model.Product, error) {
	return s.reportRepo.LowStock(LowStockThreshold)
}

func (s *reportService) GetStockHistory() ([]model.StockAddition, error) {
	return s.reportRepo.StockAdditionHistory()
}

func (s *reportService) GetSalesHistory() ([]model.Sale, error) {
	return s.reportRepo.SalesHistory()
}

func (s *reportService) GetInvestments() ([]model.Investment, error) {
	return s.reportRepo.Investments()
}

func (s *reportService) GetActivityLogs() ([]model.ActivityLog, error) {
	return s.reportRepo.ActivityLogs()
}

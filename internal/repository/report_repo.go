package repository

import (
	"time"

	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"

	"gorm.io/gorm"
)

// ReportRepository is the read side: every figure is derived on demand from
// committed rows, never cached or materialized.
type ReportRepository interface {
	TotalStock() (int64, error)
	TotalRevenue() (int64, error)
	CostUsed() (int64, error)
	TotalInvestment() (int64, error)
	LowStock(threshold int) ([]model.Product, error)
	TopFlavors() ([]FlavorSales, error)
	TopCustomers() ([]CustomerSales, error)
	RevenueByDate() ([]DatedAmount, error)
	CostByDate() ([]DatedAmount, error)
	StockAdditionHistory() ([]model.StockAddition, error)
	SalesHistory() ([]model.Sale, error)
	Investments() ([]model.Investment, error)
	ActivityLogs() ([]model.ActivityLog, error)
}

// FlavorSales aggregates sales per flavor name.
type FlavorSales struct {
	FlavorName string `json:"flavor_name"`
	Quantity   int64  `json:"quantity"`
	Revenue    int64  `json:"revenue"`
}

// CustomerSales aggregates sales per customer name.
type CustomerSales struct {
	CustomerName string `json:"customer_name"`
	Quantity     int64  `json:"quantity"`
	Revenue      int64  `json:"revenue"`
}

// DatedAmount is one ledger row reduced to its business date and amount,
// used for calendar-month rollups.
type DatedAmount struct {
	Date   time.Time `json:"date"`
	Amount int64     `json:"amount"`
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) TotalStock() (int64, error) {
	var total int64
	err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepo) TotalRevenue() (int64, error) {
	var total int64
	err := r.db.Model(&model.Sale{}).
		Select("COALESCE(SUM(revenue), 0)").
		Scan(&total).Error
	return total, err
}

// CostUsed is realized production cost: the sum of batch costs ever
// recorded, not current stock times cost price.
func (r *reportRepo) CostUsed() (int64, error) {
	var total int64
	err := r.db.Model(&model.StockAddition{}).
		Select("COALESCE(SUM(batch_cost), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepo) TotalInvestment() (int64, error) {
	var total int64
	err := r.db.Model(&model.Investment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepo) LowStock(threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Flavor").
		Where("stock < ?", threshold).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

func (r *reportRepo) TopFlavors() ([]FlavorSales, error) {
	var results []FlavorSales
	err := r.db.Model(&model.Sale{}).
		Select("flavors.name AS flavor_name, COALESCE(SUM(sales.quantity), 0) AS quantity, COALESCE(SUM(sales.revenue), 0) AS revenue").
		Joins("JOIN products ON products.id = sales.product_id").
		Joins("LEFT JOIN flavors ON flavors.id = products.flavor_id").
		Group("flavors.name").
		Order("revenue DESC").
		Scan(&results).Error
	return results, err
}

func (r *reportRepo) TopCustomers() ([]CustomerSales, error) {
	var results []CustomerSales
	err := r.db.Model(&model.Sale{}).
		Select("customers.name AS customer_name, COALESCE(SUM(sales.quantity), 0) AS quantity, COALESCE(SUM(sales.revenue), 0) AS revenue").
		Joins("LEFT JOIN customers ON customers.id = sales.customer_id").
		Group("customers.name").
		Order("revenue DESC").
		Scan(&results).Error
	return results, err
}

func (r *reportRepo) RevenueByDate() ([]DatedAmount, error) {
	var rows []DatedAmount
	err := r.db.Model(&model.Sale{}).
		Select("date, revenue AS amount").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) CostByDate() ([]DatedAmount, error) {
	var rows []DatedAmount
	err := r.db.Model(&model.StockAddition{}).
		Select("date, batch_cost AS amount").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) StockAdditionHistory() ([]model.StockAddition, error) {
	var additions []model.StockAddition
	err := r.db.Preload("Product").Preload("Product.Flavor").
		Order("created_at DESC").
		Find(&additions).Error
	return additions, err
}

func (r *reportRepo) SalesHistory() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").Preload("Product.Flavor").Preload("Customer").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *reportRepo) Investments() ([]model.Investment, error) {
	var investments []model.Investment
	err := r.db.Order("date DESC").Find(&investments).Error
	return investments, err
}

func (r *reportRepo) ActivityLogs() ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.db.Order("created_at DESC").Find(&logs).Error
	return logs, err
}

package handler

import (
	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	ledger  service.LedgerService
	reports service.ReportService
}

func NewReportHandler(ledger service.LedgerService, reports service.ReportService) *ReportHandler {
	return &ReportHandler{ledger: ledger, reports: reports}
}

// GetDashboard returns the overview. Staff only see the stock figures;
// admins get the full financial summary and the low-stock alert.
// GET /api/v1/dashboard
func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	summary, err := h.reports.GetSummary()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard"})
	}

	products, err := h.ledger.GetProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard"})
	}

	if getRole(c) != model.RoleAdmin {
		return c.JSON(fiber.Map{
			"total_stock": summary.TotalStock,
			"products":    products,
		})
	}

	lowStock, err := h.reports.GetLowStock()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard"})
	}

	return c.JSON(fiber.Map{
		"summary":   summary,
		"products":  products,
		"low_stock": lowStock,
	})
}

// GetFinancialSummary returns the scalar metrics
// GET /api/v1/reports/financial-summary
func (h *ReportHandler) GetFinancialSummary(c *fiber.Ctx) error {
	summary, err := h.reports.GetSummary()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch financial summary"})
	}
	return c.JSON(summary)
}

// GetMonthlyRollup returns revenue, cost and profit per calendar month
// GET /api/v1/reports/monthly
func (h *ReportHandler) GetMonthlyRollup(c *fiber.Ctx) error {
	rollup, err := h.reports.GetMonthlyRollup()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch monthly rollup"})
	}
	return c.JSON(rollup)
}

// GetTopFlavors returns flavors ranked by revenue
// GET /api/v1/reports/top-flavors
func (h *ReportHandler) GetTopFlavors(c *fiber.Ctx) error {
	flavors, err := h.reports.GetTopFlavors()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch top flavors"})
	}
	return c.JSON(flavors)
}

// GetTopCustomers returns customers ranked by revenue
// GET /api/v1/reports/top-customers
func (h *ReportHandler) GetTopCustomers(c *fiber.Ctx) error {
	customers, err := h.reports.GetTopCustomers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch top customers"})
	}
	return c.JSON(customers)
}

// GetLowStock returns products under the fixed threshold
// GET /api/v1/reports/low-stock
func (h *ReportHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.reports.GetLowStock()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch low stock"})
	}
	return c.JSON(products)
}

// GetActivityLogs returns the audit trail, newest first (admin only)
// GET /api/v1/activity-logs
func (h *ReportHandler) GetActivityLogs(c *fiber.Ctx) error {
	logs, err := h.reports.GetActivityLogs()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity logs"})
	}
	return c.JSON(logs)
}

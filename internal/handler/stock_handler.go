package handler

import (
	"github.com/Akhileshkolipakula/soda-business-manager/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	ledger  service.LedgerService
	reports service.ReportService
}

func NewStockHandler(ledger service.LedgerService, reports service.ReportService) *StockHandler {
	return &StockHandler{ledger: ledger, reports: reports}
}

type addStockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Date      string `json:"date"` // YYYY-MM-DD, defaults to today
}

// AddStock records a production batch
// POST /api/v1/stock-additions
func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	var req addStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	productID, err := parseUUID(req.ProductID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	addition, err := h.ledger.AddStock(productID, req.Quantity, date, getUsername(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Stock added", "data": addition})
}

// GetStockHistory lists every batch, newest first
// GET /api/v1/stock-additions
func (h *StockHandler) GetStockHistory(c *fiber.Ctx) error {
	additions, err := h.reports.GetStockHistory()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(additions)
}

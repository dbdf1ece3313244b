package handler

import (
	"github.com/Akhileshkolipakula/soda-business-manager/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InvestmentHandler struct {
	ledger  service.LedgerService
	reports service.ReportService
}

func NewInvestmentHandler(ledger service.LedgerService, reports service.ReportService) *InvestmentHandler {
	return &InvestmentHandler{ledger: ledger, reports: reports}
}

type addInvestmentRequest struct {
	Amount int64  `json:"amount"` // minor units (paise)
	Note   string `json:"note"`
	Date   string `json:"date"` // YYYY-MM-DD, defaults to today
}

// AddInvestment records capital put into the company
// POST /api/v1/investments
func (h *InvestmentHandler) AddInvestment(c *fiber.Ctx) error {
	var req addInvestmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	investment, err := h.ledger.AddInvestment(req.Amount, req.Note, date, getUsername(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Investment added", "data": investment})
}

// GetInvestments lists investments, newest first
// GET /api/v1/investments
func (h *InvestmentHandler) GetInvestments(c *fiber.Ctx) error {
	investments, err := h.reports.GetInvestments()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(investments)
}

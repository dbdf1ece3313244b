package handler

import (
	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	ledger  service.LedgerService
	reports service.ReportService
}

func NewSaleHandler(ledger service.LedgerService, reports service.ReportService) *SaleHandler {
	return &SaleHandler{ledger: ledger, reports: reports}
}

type recordSaleRequest struct {
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	Date       string          `json:"date"`        // YYYY-MM-DD, defaults to today
	CustomerID string          `json:"customer_id"` // empty or "new": create the customer below
	Customer   *model.Customer `json:"customer"`
}

// RecordSale sells stock to a customer, creating the customer inline when
// no existing one is selected
// POST /api/v1/sales
func (h *SaleHandler) RecordSale(c *fiber.Ctx) error {
	var req recordSaleRequest
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

	saleReq := &service.SaleRequest{
		ProductID: productID,
		Quantity:  req.Quantity,
		Date:      date,
		Customer:  req.Customer,
	}

	if req.CustomerID != "" && req.CustomerID != "new" {
		customerID, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
		}
		saleReq.CustomerID = &customerID
	}

	sale, err := h.ledger.RecordSale(saleReq, getUsername(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// GetSalesHistory lists every sale, newest first
// GET /api/v1/sales
func (h *SaleHandler) GetSalesHistory(c *fiber.Ctx) error {
	sales, err := h.reports.GetSalesHistory()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

package handler

import (
	"github.com/Akhileshkolipakula/soda-business-manager/internal/service"

	"github.com/gofiber/fiber/v2"
)

type FlavorHandler struct {
	service service.LedgerService
}

func NewFlavorHandler(s service.LedgerService) *FlavorHandler {
	return &FlavorHandler{service: s}
}

type flavorRequest struct {
	Name string `json:"name"`
}

func (h *FlavorHandler) GetFlavors(c *fiber.Ctx) error {
	flavors, err := h.service.GetFlavors()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(flavors)
}

func (h *FlavorHandler) CreateFlavor(c *fiber.Ctx) error {
	var req flavorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	flavor, err := h.service.AddFlavor(req.Name, getUsername(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Flavor added", "data": flavor})
}

func (h *FlavorHandler) UpdateFlavor(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid flavor ID"})
	}

	var req flavorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	flavor, err := h.service.UpdateFlavor(id, req.Name, getUsername(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Flavor updated", "data": flavor})
}

func (h *FlavorHandler) DeleteFlavor(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid flavor ID"})
	}

	if err := h.service.DeleteFlavor(id, getUsername(c)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Flavor deleted"})
}

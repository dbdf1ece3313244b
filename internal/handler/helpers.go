package handler

import (
	"errors"
	"time"

	"github.com/Akhileshkolipakula/soda-business-manager/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull the authenticated identity from the request context
// (set by the auth middleware).
func getUsername(c *fiber.Ctx) string {
	username := c.Locals("username")
	if username == nil {
		return "system"
	}
	return username.(string)
}

func getRole(c *fiber.Ctx) string {
	role := c.Locals("role")
	if role == nil {
		return ""
	}
	return role.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// parseDate accepts the ledger's YYYY-MM-DD business date. An empty string
// maps to the zero time, which services default to today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

// respondServiceError maps typed ledger failures onto HTTP status codes.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrReferencedEntity),
		errors.Is(err, service.ErrInsufficientStock):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidReference),
		errors.Is(err, service.ErrPasswordTooShort):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/mandi-assist/internal/ports"
)

type PriceHandler struct {
	assistant ports.AssistantService
	prices    ports.PriceRepository
	log       *zap.Logger
}

func NewPriceHandler(svc ports.AssistantService, prices ports.PriceRepository, log *zap.Logger) *PriceHandler {
	return &PriceHandler{
		assistant: svc,
		prices:    prices,
		log:       log,
	}
}

// Get serves GET /prices/:vegetable. A vegetable without a record is a
// 404, not a failure.
func (h *PriceHandler) Get(c *fiber.Ctx) error {
	vegetable := c.Params("vegetable")
	rec, err := h.assistant.VegetablePrice(c.Context(), vegetable)
	if err != nil {
		h.log.Error("Failed to look up price", zap.String("vegetable", vegetable), zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Price store unavailable"})
	}
	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No price recorded for this vegetable"})
	}
	return c.JSON(rec)
}

// List serves GET /prices, the full price table.
func (h *PriceHandler) List(c *fiber.Ctx) error {
	recs, err := h.prices.FindAll(c.Context())
	if err != nil {
		h.log.Error("Failed to list prices", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Price store unavailable"})
	}
	return c.JSON(fiber.Map{
		"count":  len(recs),
		"prices": recs,
	})
}

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/mandi-assist/internal/domain"
	"github.com/seu-repo/mandi-assist/internal/ports"
)

type VendorHandler struct {
	assistant ports.AssistantService
	log       *zap.Logger
}

func NewVendorHandler(svc ports.AssistantService, log *zap.Logger) *VendorHandler {
	return &VendorHandler{
		assistant: svc,
		log:       log,
	}
}

// GetNearby serves GET /vendors/nearby?lat=&lng=&radius_km=. Radius is
// optional; the service applies its default. An empty list is a 200.
func (h *VendorHandler) GetNearby(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or invalid lat"})
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or invalid lng"})
	}

	radiusKm := 0.0
	if raw := c.Query("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || radiusKm <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid radius_km"})
		}
	}

	origin := domain.UserLocation{Lat: lat, Lng: lng}
	vendors, err := h.assistant.NearbyVendors(c.Context(), origin, radiusKm)
	if err != nil {
		h.log.Error("Failed to search nearby vendors", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Vendor directory unavailable"})
	}

	return c.JSON(fiber.Map{
		"count":   len(vendors),
		"vendors": vendors,
	})
}

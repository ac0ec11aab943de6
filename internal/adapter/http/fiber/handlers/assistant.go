package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/mandi-assist/internal/domain"
	"github.com/seu-repo/mandi-assist/internal/ports"
	"github.com/seu-repo/mandi-assist/internal/service/assistant"
)

type AssistantHandler struct {
	assistant ports.AssistantService
	log       *zap.Logger
}

func NewAssistantHandler(svc ports.AssistantService, log *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistant: svc,
		log:       log,
	}
}

type TranscriptAlternativeRequest struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

type VoiceResolveRequest struct {
	Alternatives []TranscriptAlternativeRequest `json:"alternatives"`
}

type VoiceResolveResponse struct {
	Resolved   bool                    `json:"resolved"`
	Command    *domain.ResolvedCommand `json:"command,omitempty"`
	Transcript string                  `json:"transcript"`
}

// ResolveVoice resolves a set of transcript alternatives to a navigation
// command. An unmatched utterance is a 200 with resolved=false.
func (h *AssistantHandler) ResolveVoice(c *fiber.Ctx) error {
	var req VoiceResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if len(req.Alternatives) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No transcript alternatives"})
	}

	alts := make([]domain.TranscriptAlternative, len(req.Alternatives))
	for i, a := range req.Alternatives {
		alts[i] = domain.TranscriptAlternative{Transcript: a.Transcript, Confidence: a.Confidence}
	}

	cmd, transcript, err := h.assistant.ResolveVoice(c.Context(), alts)
	if err != nil {
		h.log.Error("Failed to resolve voice command", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve voice command"})
	}

	return c.JSON(VoiceResolveResponse{
		Resolved:   cmd != nil,
		Command:    cmd,
		Transcript: transcript,
	})
}

type ChatRequest struct {
	SessionID string               `json:"session_id"`
	Text      string               `json:"text"`
	Location  *domain.UserLocation `json:"location,omitempty"`
}

// Chat answers a free-text query. A query superseded by a newer one from
// the same session returns 409 and the client drops the response.
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Empty query text"})
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	resp, err := h.assistant.HandleChat(c.Context(), req.SessionID, req.Text, req.Location)
	if err != nil {
		if errors.Is(err, assistant.ErrSuperseded) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Query superseded by a newer one"})
		}
		h.log.Error("Failed to handle chat query", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to handle chat query"})
	}

	return c.JSON(fiber.Map{
		"session_id": req.SessionID,
		"text":       resp.Text,
		"data":       resp.Data,
	})
}

package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/mandi-assist/internal/domain"
	"github.com/seu-repo/mandi-assist/internal/nlu"
	"github.com/seu-repo/mandi-assist/internal/ports"
	"github.com/seu-repo/mandi-assist/internal/service/assistant"
)

// Frame types exchanged on /ws/voice. The browser speech recognizer
// sends alternative sets; location arrives on its own frame whenever the
// client grants access.
const (
	frameAlternatives = "alternatives"
	frameChat         = "chat"
	frameLocation     = "location"
)

type voiceFrame struct {
	Type         string                         `json:"type"`
	Alternatives []domain.TranscriptAlternative `json:"alternatives,omitempty"`
	Text         string                         `json:"text,omitempty"`
	Location     *domain.UserLocation           `json:"location,omitempty"`
}

type voiceReply struct {
	Type       string                  `json:"type"`
	Resolved   bool                    `json:"resolved,omitempty"`
	Command    *domain.ResolvedCommand `json:"command,omitempty"`
	Transcript string                  `json:"transcript,omitempty"`
	Text       string                  `json:"text,omitempty"`
	Data       interface{}             `json:"data,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

type VoiceStreamHandler struct {
	assistant       ports.AssistantService
	classifier      *nlu.Classifier
	locationTimeout time.Duration
	logger          *zap.Logger
}

func NewVoiceStreamHandler(svc ports.AssistantService, classifier *nlu.Classifier, locationTimeout time.Duration, logger *zap.Logger) *VoiceStreamHandler {
	return &VoiceStreamHandler{
		assistant:       svc,
		classifier:      classifier,
		locationTimeout: locationTimeout,
		logger:          logger,
	}
}

// HandleVoiceStream serves one client session: frames in, resolutions
// out. The location cell is per connection; the first fix anchors every
// later proximity query on this stream.
func (h *VoiceStreamHandler) HandleVoiceStream(c *websocket.Conn) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx := context.Background()
	cell := assistant.NewLocationCell(h.locationTimeout)

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			break
		}

		var frame voiceFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			h.writeReply(c, voiceReply{Type: "error", Error: "malformed frame"})
			continue
		}

		switch frame.Type {
		case frameLocation:
			if frame.Location != nil {
				cell.Set(*frame.Location)
			}

		case frameAlternatives:
			cmd, transcript, err := h.assistant.ResolveVoice(ctx, frame.Alternatives)
			if err != nil {
				h.logger.Error("Failed to resolve voice command", zap.Error(err))
				h.writeReply(c, voiceReply{Type: "error", Error: "resolution failed"})
				continue
			}
			h.writeReply(c, voiceReply{
				Type:       "resolution",
				Resolved:   cmd != nil,
				Command:    cmd,
				Transcript: transcript,
			})

		case frameChat:
			loc := cell.Get()
			if loc == nil && h.classifier.Classify(frame.Text) == nlu.TopicVendorSearch {
				// Give a just-connected client a moment to deliver its
				// first fix before answering "I need your location".
				loc, err = cell.Await(ctx)
				if err != nil && !errors.Is(err, assistant.ErrNoLocation) {
					break
				}
			}

			resp, err := h.assistant.HandleChat(ctx, sessionID, frame.Text, loc)
			if err != nil {
				if errors.Is(err, assistant.ErrSuperseded) {
					continue
				}
				h.logger.Error("Failed to handle chat query", zap.Error(err))
				h.writeReply(c, voiceReply{Type: "error", Error: "query failed"})
				continue
			}
			h.writeReply(c, voiceReply{
				Type: "answer",
				Text: resp.Text,
				Data: resp.Data,
			})

		default:
			h.writeReply(c, voiceReply{Type: "error", Error: "unknown frame type"})
		}
	}
}

func (h *VoiceStreamHandler) writeReply(c *websocket.Conn, reply voiceReply) {
	payload, err := json.Marshal(reply)
	if err != nil {
		h.logger.Error("Failed to marshal reply", zap.Error(err))
		return
	}
	if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
		h.logger.Warn("Failed to write reply", zap.Error(err))
	}
}

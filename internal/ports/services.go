package ports

import (
	"context"
	"time"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

// AssistantService resolves free-form user utterances into navigation
// intents or structured chat answers.
type AssistantService interface {
	// ResolveVoice picks the best-matching intent among transcript
	// alternatives. A nil command with a non-empty transcript means no
	// alternative matched; the transcript is the top-confidence candidate,
	// kept for diagnostic display.
	ResolveVoice(ctx context.Context, alts []domain.TranscriptAlternative) (*domain.ResolvedCommand, string, error)

	// HandleChat answers a free-text query. loc may be nil; queries that
	// need a location then get a request-for-location response instead of
	// an error. sessionID scopes the last-query-wins policy.
	HandleChat(ctx context.Context, sessionID, text string, loc *domain.UserLocation) (*domain.ChatResponse, error)

	// NearbyVendors runs the proximity search directly, bypassing the
	// classifier. Used by the REST vendor endpoint.
	NearbyVendors(ctx context.Context, origin domain.UserLocation, radiusKm float64) ([]domain.NearbyVendor, error)

	// VegetablePrice looks up the price record for a vegetable name.
	// Returns (nil, nil) when the store has no record.
	VegetablePrice(ctx context.Context, vegetable string) (*domain.PriceRecord, error)
}

// SpeechSource abstracts a speech-recognition backend. The matching core
// only ever sees transcript alternatives, never vendor API specifics.
type SpeechSource interface {
	Alternatives() []domain.TranscriptAlternative
}

// Cache is a generic key-value cache with TTL support.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

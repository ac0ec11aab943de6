package mocks

import (
	"context"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

// MockAssistantService is a mock implementation of AssistantService
type MockAssistantService struct {
	ResolveVoiceFunc   func(ctx context.Context, alts []domain.TranscriptAlternative) (*domain.ResolvedCommand, string, error)
	HandleChatFunc     func(ctx context.Context, sessionID, text string, loc *domain.UserLocation) (*domain.ChatResponse, error)
	NearbyVendorsFunc  func(ctx context.Context, origin domain.UserLocation, radiusKm float64) ([]domain.NearbyVendor, error)
	VegetablePriceFunc func(ctx context.Context, vegetable string) (*domain.PriceRecord, error)
}

func (m *MockAssistantService) ResolveVoice(ctx context.Context, alts []domain.TranscriptAlternative) (*domain.ResolvedCommand, string, error) {
	if m.ResolveVoiceFunc != nil {
		return m.ResolveVoiceFunc(ctx, alts)
	}
	return nil, "", nil
}

func (m *MockAssistantService) HandleChat(ctx context.Context, sessionID, text string, loc *domain.UserLocation) (*domain.ChatResponse, error) {
	if m.HandleChatFunc != nil {
		return m.HandleChatFunc(ctx, sessionID, text, loc)
	}
	return &domain.ChatResponse{}, nil
}

func (m *MockAssistantService) NearbyVendors(ctx context.Context, origin domain.UserLocation, radiusKm float64) ([]domain.NearbyVendor, error) {
	if m.NearbyVendorsFunc != nil {
		return m.NearbyVendorsFunc(ctx, origin, radiusKm)
	}
	return []domain.NearbyVendor{}, nil
}

func (m *MockAssistantService) VegetablePrice(ctx context.Context, vegetable string) (*domain.PriceRecord, error) {
	if m.VegetablePriceFunc != nil {
		return m.VegetablePriceFunc(ctx, vegetable)
	}
	return nil, nil
}

// MockSpeechSource is a mock implementation of SpeechSource
type MockSpeechSource struct {
	AlternativesFunc func() []domain.TranscriptAlternative
}

func (m *MockSpeechSource) Alternatives() []domain.TranscriptAlternative {
	if m.AlternativesFunc != nil {
		return m.AlternativesFunc()
	}
	return nil
}

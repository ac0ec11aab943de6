package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/mandi-assist/internal/adapter/queue"
	"github.com/seu-repo/mandi-assist/internal/domain"
	"github.com/seu-repo/mandi-assist/internal/geo"
	"github.com/seu-repo/mandi-assist/internal/nlu"
	"github.com/seu-repo/mandi-assist/internal/observability/telemetry"
	"github.com/seu-repo/mandi-assist/internal/ports"
)

// ErrSuperseded is returned for a query that was cancelled because the
// same session issued a newer one. Transports drop these silently.
var ErrSuperseded = errors.New("query superseded by a newer one")

// NATS subjects emitted by the service.
const (
	SubjectIntentResolved  = "assistant.intent.resolved"
	SubjectQueryClassified = "assistant.query.classified"
)

const cacheKeyVendorDirectory = "assistant:vendors:directory"

// IntentResolvedEvent is published after each successful voice resolution.
type IntentResolvedEvent struct {
	ID         string    `json:"id"`
	Key        string    `json:"key"`
	Action     string    `json:"action"`
	Transcript string    `json:"transcript"`
	Confidence float64   `json:"confidence"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// QueryClassifiedEvent is published for each classified chat query.
type QueryClassifiedEvent struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Topic     string    `json:"topic"`
	AskedAt   time.Time `json:"asked_at"`
}

// Options carries the tunables main reads from config.
type Options struct {
	DefaultRadiusKm   float64
	DirectoryCacheTTL time.Duration
	BreakerTimeout    time.Duration
}

type inflightQuery struct {
	cancel context.CancelCauseFunc
}

// Service implements ports.AssistantService on top of the matching engine
// and the vendor/price collaborators.
type Service struct {
	ranker     *nlu.Ranker
	classifier *nlu.Classifier
	vendors    ports.VendorRepository
	prices     ports.PriceRepository
	cache      ports.Cache
	mq         queue.MessageQueue
	breaker    *gobreaker.CircuitBreaker
	log        *zap.Logger

	defaultRadiusKm float64
	directoryTTL    time.Duration

	mu       sync.Mutex
	inflight map[string]*inflightQuery
}

func New(
	ranker *nlu.Ranker,
	classifier *nlu.Classifier,
	vendors ports.VendorRepository,
	prices ports.PriceRepository,
	cache ports.Cache,
	mq queue.MessageQueue,
	logger *zap.Logger,
	opts Options,
) *Service {
	if opts.DefaultRadiusKm <= 0 {
		opts.DefaultRadiusKm = geo.DefaultRadiusKm
	}
	if opts.DirectoryCacheTTL <= 0 {
		opts.DirectoryCacheTTL = time.Minute
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}

	s := &Service{
		ranker:          ranker,
		classifier:      classifier,
		vendors:         vendors,
		prices:          prices,
		cache:           cache,
		mq:              mq,
		log:             logger,
		defaultRadiusKm: opts.DefaultRadiusKm,
		directoryTTL:    opts.DirectoryCacheTTL,
		inflight:        make(map[string]*inflightQuery),
	}

	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "assistant-collaborators",
		Timeout: opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return s
}

var _ ports.AssistantService = (*Service)(nil)

// ResolveVoice picks the best intent among the transcript alternatives.
// A miss is a normal outcome: the top-confidence transcript comes back
// for diagnostics and no error is raised.
func (s *Service) ResolveVoice(ctx context.Context, alts []domain.TranscriptAlternative) (*domain.ResolvedCommand, string, error) {
	start := time.Now()
	cmd, top := s.ranker.Resolve(alts)
	telemetry.ResolutionLatency.Observe(time.Since(start).Seconds())

	if cmd == nil {
		telemetry.VoiceResolutionsTotal.WithLabelValues("none", "no_match").Inc()
		s.log.Info("no intent matched",
			zap.String("top_transcript", top),
			zap.Int("alternatives", len(alts)))
		return nil, top, nil
	}

	telemetry.VoiceResolutionsTotal.WithLabelValues(cmd.Key, "resolved").Inc()
	s.log.Info("intent resolved",
		zap.String("intent", cmd.Key),
		zap.String("action", string(cmd.Action)),
		zap.Float64("confidence", cmd.Confidence))

	s.publish(SubjectIntentResolved, IntentResolvedEvent{
		ID:         uuid.NewString(),
		Key:        cmd.Key,
		Action:     string(cmd.Action),
		Transcript: cmd.Transcript,
		Confidence: cmd.Confidence,
		ResolvedAt: time.Now().UTC(),
	})

	return cmd, cmd.Transcript, nil
}

// HandleChat classifies a free-text query and dispatches it to the
// matching handler. Only the newest query per session is answered; older
// in-flight ones come back as ErrSuperseded.
func (s *Service) HandleChat(ctx context.Context, sessionID, text string, loc *domain.UserLocation) (*domain.ChatResponse, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	if sessionID != "" {
		entry := s.takeOver(sessionID, cancel)
		defer s.release(sessionID, entry)
	}

	topic := s.classifier.Classify(text)
	telemetry.ChatQueriesTotal.WithLabelValues(string(topic)).Inc()
	s.log.Debug("chat query classified",
		zap.String("session_id", sessionID),
		zap.String("topic", string(topic)))

	s.publish(SubjectQueryClassified, QueryClassifiedEvent{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Topic:     string(topic),
		AskedAt:   time.Now().UTC(),
	})

	var resp domain.ChatResponse
	switch topic {
	case nlu.TopicVendorSearch:
		resp = s.answerVendorSearch(ctx, text, loc)
	case nlu.TopicPriceLookup:
		resp = s.answerPriceLookup(ctx, text)
	case nlu.TopicDeliveryTime:
		resp = nlu.FormatDeliveryTime()
	case nlu.TopicDeliveryFee:
		resp = nlu.FormatDeliveryFee()
	case nlu.TopicOrderCancel:
		resp = nlu.FormatOrderCancel()
	case nlu.TopicOrderTrack:
		resp = nlu.FormatOrderTrack()
	case nlu.TopicPayment:
		resp = nlu.FormatPaymentMethods()
	default:
		resp = nlu.FormatFallback()
	}

	if ctx.Err() != nil {
		if errors.Is(context.Cause(ctx), ErrSuperseded) {
			return nil, ErrSuperseded
		}
		return nil, ctx.Err()
	}
	return &resp, nil
}

// NearbyVendors runs the proximity search directly for the REST endpoint.
func (s *Service) NearbyVendors(ctx context.Context, origin domain.UserLocation, radiusKm float64) ([]domain.NearbyVendor, error) {
	if radiusKm <= 0 {
		radiusKm = s.defaultRadiusKm
	}
	vendors, err := s.vendorDirectory(ctx)
	if err != nil {
		return nil, err
	}
	telemetry.VendorSearchesTotal.Inc()
	return geo.FindNearby(origin, radiusKm, vendors), nil
}

// VegetablePrice looks up a price record. Inflected names resolve through
// the vocabulary ("tomatoes" hits "tomato"); an unknown vegetable is a
// store miss, (nil, nil).
func (s *Service) VegetablePrice(ctx context.Context, vegetable string) (*domain.PriceRecord, error) {
	name := s.classifier.Vocabulary().Find(vegetable)
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(vegetable))
	}
	return s.priceRecord(ctx, name)
}

func (s *Service) answerVendorSearch(ctx context.Context, text string, loc *domain.UserLocation) domain.ChatResponse {
	if loc == nil {
		return nlu.FormatLocationRequest()
	}

	radius := geo.ParseRadiusKm(text)
	vendors, err := s.vendorDirectory(ctx)
	if err != nil {
		s.log.Warn("vendor directory unavailable", zap.Error(err))
		return nlu.FormatUnavailable()
	}

	telemetry.VendorSearchesTotal.Inc()
	return nlu.FormatNearby(radius, geo.FindNearby(*loc, radius, vendors))
}

func (s *Service) answerPriceLookup(ctx context.Context, text string) domain.ChatResponse {
	rec, err := s.priceRecord(ctx, s.classifier.Vocabulary().Find(text))
	if err != nil {
		s.log.Warn("price store unavailable", zap.Error(err))
		return nlu.FormatUnavailable()
	}
	return nlu.FormatPrice(rec)
}

// vendorDirectory reads the full directory, preferring the cache. Store
// reads go through the circuit breaker; a fresh read refreshes the cache
// best-effort.
func (s *Service) vendorDirectory(ctx context.Context) ([]domain.VendorRecord, error) {
	if cached, err := s.cache.Get(ctx, cacheKeyVendorDirectory); err == nil && cached != "" {
		var vendors []domain.VendorRecord
		if err := json.Unmarshal([]byte(cached), &vendors); err == nil {
			telemetry.CacheHitsTotal.WithLabelValues("hit").Inc()
			return vendors, nil
		}
	}
	telemetry.CacheHitsTotal.WithLabelValues("miss").Inc()

	out, err := s.breaker.Execute(func() (interface{}, error) {
		start := time.Now()
		defer func() { telemetry.DatabaseLatency.Observe(time.Since(start).Seconds()) }()
		return s.vendors.FindAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	vendors, _ := out.([]domain.VendorRecord)

	if payload, err := json.Marshal(vendors); err == nil {
		if err := s.cache.Set(ctx, cacheKeyVendorDirectory, string(payload), s.directoryTTL); err != nil {
			s.log.Debug("vendor directory cache write failed", zap.Error(err))
		}
	}
	return vendors, nil
}

func (s *Service) priceRecord(ctx context.Context, vegetable string) (*domain.PriceRecord, error) {
	if vegetable == "" {
		return nil, nil
	}
	out, err := s.breaker.Execute(func() (interface{}, error) {
		start := time.Now()
		defer func() { telemetry.DatabaseLatency.Observe(time.Since(start).Seconds()) }()
		return s.prices.FindByVegetable(ctx, vegetable)
	})
	if err != nil {
		return nil, err
	}
	rec, _ := out.(*domain.PriceRecord)
	return rec, nil
}

// takeOver registers the session's current query, cancelling whichever
// one it replaces.
func (s *Service) takeOver(sessionID string, cancel context.CancelCauseFunc) *inflightQuery {
	entry := &inflightQuery{cancel: cancel}
	s.mu.Lock()
	if prev, ok := s.inflight[sessionID]; ok {
		prev.cancel(ErrSuperseded)
	}
	s.inflight[sessionID] = entry
	s.mu.Unlock()
	return entry
}

func (s *Service) release(sessionID string, entry *inflightQuery) {
	s.mu.Lock()
	if s.inflight[sessionID] == entry {
		delete(s.inflight, sessionID)
	}
	s.mu.Unlock()
}

// publish sends an event to NATS best-effort. The answer path never
// fails because the broker is down.
func (s *Service) publish(subject string, event interface{}) {
	if s.mq == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		s.log.Error("event marshal failed", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := s.mq.Publish(subject, data); err != nil {
		s.log.Warn("event publish failed", zap.String("subject", subject), zap.Error(err))
	}
}

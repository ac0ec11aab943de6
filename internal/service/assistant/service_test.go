package assistant

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/mandi-assist/internal/domain"
	"github.com/seu-repo/mandi-assist/internal/mocks"
	"github.com/seu-repo/mandi-assist/internal/nlu"
)

var testOrigin = domain.UserLocation{Lat: 19.07, Lng: 72.87}

func ptr(f float64) *float64 { return &f }

// vendorAtKm places a vendor due north of the test origin.
func vendorAtKm(name string, km float64) domain.VendorRecord {
	lat := testOrigin.Lat + (km/6371.0)*(180.0/math.Pi)
	return domain.VendorRecord{
		Name:      name,
		Address:   "Station Road",
		Latitude:  ptr(lat),
		Longitude: ptr(testOrigin.Lng),
	}
}

func newTestService(vendors *mocks.MockVendorRepository, prices *mocks.MockPriceRepository) (*Service, *mocks.MockMessageQueue) {
	mq := mocks.NewMockMessageQueue()
	vocab := nlu.NewVocabulary()
	svc := New(
		nlu.NewRanker(nlu.NewNormalizer(), nlu.NewMatcher(nlu.DefaultCatalog())),
		nlu.NewClassifier(vocab),
		vendors,
		prices,
		mocks.NewMockCache(),
		mq,
		zap.NewNop(),
		Options{},
	)
	return svc, mq
}

func TestResolveVoice_PicksHighestConfidenceMatch(t *testing.T) {
	// Arrange
	svc, mq := newTestService(&mocks.MockVendorRepository{}, &mocks.MockPriceRepository{})
	alts := []domain.TranscriptAlternative{
		{Transcript: "show me markets", Confidence: 0.81},
		{Transcript: "show me markers", Confidence: 0.40},
	}

	// Act
	cmd, transcript, err := svc.ResolveVoice(context.Background(), alts)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cmd == nil {
		t.Fatal("expected a resolved command, got nil")
	}
	if cmd.Key != "markets" || cmd.Action != domain.RouteMarkets {
		t.Errorf("expected markets/%s, got %s/%s", domain.RouteMarkets, cmd.Key, cmd.Action)
	}
	if transcript != "show me markets" {
		t.Errorf("expected the matching transcript, got %q", transcript)
	}
	if got := mq.GetPublishedMessages(SubjectIntentResolved); len(got) != 1 {
		t.Errorf("expected 1 resolved event, got %d", len(got))
	}
}

func TestResolveVoice_NoMatchIsNotAnError(t *testing.T) {
	// Arrange
	svc, mq := newTestService(&mocks.MockVendorRepository{}, &mocks.MockPriceRepository{})
	alts := []domain.TranscriptAlternative{
		{Transcript: "xqzzyv", Confidence: 0.9},
	}

	// Act
	cmd, transcript, err := svc.ResolveVoice(context.Background(), alts)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cmd != nil {
		t.Fatalf("expected nil command, got %+v", cmd)
	}
	if transcript != "xqzzyv" {
		t.Errorf("expected the top transcript for diagnostics, got %q", transcript)
	}
	if got := mq.GetPublishedMessages(SubjectIntentResolved); len(got) != 0 {
		t.Errorf("expected no resolved event on a miss, got %d", len(got))
	}
}

func TestHandleChat_VendorSearchFiltersByRadius(t *testing.T) {
	// Arrange: one vendor inside the asked 3 km, one outside.
	vendors := &mocks.MockVendorRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.VendorRecord, error) {
			return []domain.VendorRecord{
				vendorAtKm("Sharma Fresh Produce", 2.1),
				vendorAtKm("Borivali Mandi", 6.0),
			}, nil
		},
	}
	svc, _ := newTestService(vendors, &mocks.MockPriceRepository{})

	// Act
	resp, err := svc.HandleChat(context.Background(), "s1", "Show vendors within 3 km", &testOrigin)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(resp.Text, "Sharma Fresh Produce") {
		t.Errorf("expected the in-radius vendor in %q", resp.Text)
	}
	if strings.Contains(resp.Text, "Borivali Mandi") {
		t.Errorf("out-of-radius vendor leaked into %q", resp.Text)
	}
	near, ok := resp.Data.([]domain.NearbyVendor)
	if !ok || len(near) != 1 {
		t.Fatalf("expected 1 nearby vendor in data, got %#v", resp.Data)
	}
	if near[0].DistanceKm != 2.1 {
		t.Errorf("expected distance 2.1, got %v", near[0].DistanceKm)
	}
}

func TestHandleChat_VendorSearchWithoutLocation(t *testing.T) {
	// Arrange: the repository must not even be consulted.
	called := false
	vendors := &mocks.MockVendorRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.VendorRecord, error) {
			called = true
			return nil, nil
		},
	}
	svc, _ := newTestService(vendors, &mocks.MockPriceRepository{})

	// Act
	resp, err := svc.HandleChat(context.Background(), "s1", "any shops near me?", nil)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(resp.Text, "location") {
		t.Errorf("expected a request-for-location response, got %q", resp.Text)
	}
	if called {
		t.Error("vendor repository consulted despite missing location")
	}
}

func TestHandleChat_VendorDirectoryFailure(t *testing.T) {
	// Arrange
	vendors := &mocks.MockVendorRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.VendorRecord, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc, _ := newTestService(vendors, &mocks.MockPriceRepository{})

	// Act
	resp, err := svc.HandleChat(context.Background(), "s1", "vendors near me", &testOrigin)

	// Assert: a broken collaborator degrades to a retry message, and the
	// text must not read like an empty search result.
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(resp.Text, "try again") {
		t.Errorf("expected the unavailable text, got %q", resp.Text)
	}
	if strings.Contains(resp.Text, "No vendors found") {
		t.Errorf("failure text must differ from the empty-result text, got %q", resp.Text)
	}
}

func TestHandleChat_PriceLookup(t *testing.T) {
	// Arrange
	var asked string
	prices := &mocks.MockPriceRepository{
		FindByVegetableFunc: func(ctx context.Context, vegetable string) (*domain.PriceRecord, error) {
			asked = vegetable
			return &domain.PriceRecord{Vegetable: "tomato", Average: 40, Min: 35, Max: 48}, nil
		},
	}
	svc, _ := newTestService(&mocks.MockVendorRepository{}, prices)

	// Act
	resp, err := svc.HandleChat(context.Background(), "s1", "What's the price of tomatoes?", nil)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if asked != "tomato" {
		t.Errorf("expected the base name 'tomato' asked of the store, got %q", asked)
	}
	if !strings.Contains(resp.Text, "Rs 40/kg") {
		t.Errorf("expected the average price in %q", resp.Text)
	}
}

func TestHandleChat_UnclassifiedQueryFallsBack(t *testing.T) {
	svc, _ := newTestService(&mocks.MockVendorRepository{}, &mocks.MockPriceRepository{})

	resp, err := svc.HandleChat(context.Background(), "s1", "What's the weather?", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(resp.Text, "didn't understand") {
		t.Errorf("expected the fallback help text, got %q", resp.Text)
	}
}

func TestHandleChat_StaticTopics(t *testing.T) {
	svc, _ := newTestService(&mocks.MockVendorRepository{}, &mocks.MockPriceRepository{})

	cases := []struct {
		query string
		want  string
	}{
		{"How long does delivery take?", "minutes"},
		{"what is the delivery charge", "Rs 199"},
		{"cancel my order", "cancel an order"},
		{"track my order", "live tracking"},
		{"what payment methods do you take", "UPI"},
	}

	for _, tc := range cases {
		resp, err := svc.HandleChat(context.Background(), "s1", tc.query, nil)
		if err != nil {
			t.Fatalf("HandleChat(%q): unexpected error %v", tc.query, err)
		}
		if !strings.Contains(resp.Text, tc.want) {
			t.Errorf("HandleChat(%q) = %q, want it to mention %q", tc.query, resp.Text, tc.want)
		}
	}
}

func TestHandleChat_NewerQuerySupersedesOlder(t *testing.T) {
	// Arrange: the first query blocks inside the directory read until the
	// second query for the same session has been answered.
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var once sync.Once
	vendors := &mocks.MockVendorRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.VendorRecord, error) {
			once.Do(func() {
				close(firstStarted)
				<-releaseFirst
			})
			return []domain.VendorRecord{vendorAtKm("Lane Cart", 1.0)}, nil
		},
	}
	svc, _ := newTestService(vendors, &mocks.MockPriceRepository{})

	type result struct {
		resp *domain.ChatResponse
		err  error
	}
	firstDone := make(chan result, 1)

	// Act
	go func() {
		resp, err := svc.HandleChat(context.Background(), "s1", "vendors near me", &testOrigin)
		firstDone <- result{resp, err}
	}()
	<-firstStarted

	second, err := svc.HandleChat(context.Background(), "s1", "track my order", nil)
	if err != nil {
		t.Fatalf("second query failed: %v", err)
	}
	close(releaseFirst)
	first := <-firstDone

	// Assert: only the newest query is answered.
	if !errors.Is(first.err, ErrSuperseded) {
		t.Errorf("expected the older query to return ErrSuperseded, got (%+v, %v)", first.resp, first.err)
	}
	if !strings.Contains(second.Text, "tracking") {
		t.Errorf("newest query not answered normally: %q", second.Text)
	}
}

func TestHandleChat_SessionsDoNotSupersedeEachOther(t *testing.T) {
	svc, _ := newTestService(&mocks.MockVendorRepository{}, &mocks.MockPriceRepository{})

	// Two different sessions in sequence; neither cancels the other.
	if _, err := svc.HandleChat(context.Background(), "s1", "track my order", nil); err != nil {
		t.Fatalf("session s1 failed: %v", err)
	}
	if _, err := svc.HandleChat(context.Background(), "s2", "track my order", nil); err != nil {
		t.Fatalf("session s2 failed: %v", err)
	}
}

func TestNearbyVendors_UsesDirectoryCache(t *testing.T) {
	// Arrange
	calls := 0
	vendors := &mocks.MockVendorRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.VendorRecord, error) {
			calls++
			return []domain.VendorRecord{vendorAtKm("Lane Cart", 1.0)}, nil
		},
	}
	svc, _ := newTestService(vendors, &mocks.MockPriceRepository{})

	// Act: two searches; the second must be served from the cache.
	if _, err := svc.NearbyVendors(context.Background(), testOrigin, 5); err != nil {
		t.Fatalf("first search failed: %v", err)
	}
	near, err := svc.NearbyVendors(context.Background(), testOrigin, 5)

	// Assert
	if err != nil {
		t.Fatalf("second search failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 repository read, got %d", calls)
	}
	if len(near) != 1 || near[0].Name != "Lane Cart" {
		t.Errorf("cached directory produced wrong result: %+v", near)
	}
}

func TestNearbyVendors_DefaultRadius(t *testing.T) {
	vendors := &mocks.MockVendorRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.VendorRecord, error) {
			return []domain.VendorRecord{
				vendorAtKm("In", 4.0),
				vendorAtKm("Out", 7.0),
			}, nil
		},
	}
	svc, _ := newTestService(vendors, &mocks.MockPriceRepository{})

	near, err := svc.NearbyVendors(context.Background(), testOrigin, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(near) != 1 || near[0].Name != "In" {
		t.Errorf("expected only the vendor inside the default 5 km, got %+v", near)
	}
}

func TestVegetablePrice_ResolvesInflectedNames(t *testing.T) {
	// Arrange
	var asked string
	prices := &mocks.MockPriceRepository{
		FindByVegetableFunc: func(ctx context.Context, vegetable string) (*domain.PriceRecord, error) {
			asked = vegetable
			return &domain.PriceRecord{Vegetable: vegetable, Average: 30, Min: 25, Max: 36}, nil
		},
	}
	svc, _ := newTestService(&mocks.MockVendorRepository{}, prices)

	// Act
	rec, err := svc.VegetablePrice(context.Background(), "Onions")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if asked != "onion" {
		t.Errorf("expected 'onion' asked of the store, got %q", asked)
	}
	if rec == nil || rec.Vegetable != "onion" {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestVegetablePrice_StoreMissIsNil(t *testing.T) {
	svc, _ := newTestService(&mocks.MockVendorRepository{}, &mocks.MockPriceRepository{})

	rec, err := svc.VegetablePrice(context.Background(), "dragonfruit")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil for an unknown vegetable, got %+v", rec)
	}
}

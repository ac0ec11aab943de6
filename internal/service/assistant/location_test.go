package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

func TestLocationCell_FirstWriteWins(t *testing.T) {
	// Arrange
	cell := NewLocationCell(time.Second)

	// Act
	first := cell.Set(domain.UserLocation{Lat: 19.07, Lng: 72.87})
	second := cell.Set(domain.UserLocation{Lat: 28.61, Lng: 77.20})

	// Assert
	if !first {
		t.Error("first write rejected")
	}
	if second {
		t.Error("second write accepted; the cell must be single-assignment")
	}
	got := cell.Get()
	if got == nil || got.Lat != 19.07 || got.Lng != 72.87 {
		t.Errorf("expected the first fix to stick, got %+v", got)
	}
}

func TestLocationCell_GetBeforeSet(t *testing.T) {
	if got := NewLocationCell(time.Second).Get(); got != nil {
		t.Errorf("expected nil before any fix, got %+v", got)
	}
}

func TestLocationCell_AwaitReturnsImmediatelyWhenSet(t *testing.T) {
	cell := NewLocationCell(time.Second)
	cell.Set(domain.UserLocation{Lat: 1, Lng: 2})

	loc, err := cell.Await(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if loc == nil || loc.Lat != 1 {
		t.Errorf("unexpected fix %+v", loc)
	}
}

func TestLocationCell_AwaitUnblockedByConcurrentSet(t *testing.T) {
	// Arrange
	cell := NewLocationCell(5 * time.Second)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cell.Set(domain.UserLocation{Lat: 19.07, Lng: 72.87})
	}()

	// Act
	loc, err := cell.Await(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if loc == nil || loc.Lat != 19.07 {
		t.Errorf("unexpected fix %+v", loc)
	}
}

func TestLocationCell_AwaitTimesOut(t *testing.T) {
	cell := NewLocationCell(20 * time.Millisecond)

	loc, err := cell.Await(context.Background())
	if !errors.Is(err, ErrNoLocation) {
		t.Fatalf("expected ErrNoLocation, got (%+v, %v)", loc, err)
	}
}

func TestLocationCell_AwaitHonorsContext(t *testing.T) {
	cell := NewLocationCell(5 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cell.Await(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLocationCell_DefaultTimeout(t *testing.T) {
	cell := NewLocationCell(0)
	if cell.timeout != DefaultLocationTimeout {
		t.Errorf("expected the default wait window, got %v", cell.timeout)
	}
}

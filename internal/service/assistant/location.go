package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

// ErrNoLocation means the location fix never arrived within the wait
// window. Callers answer with a request-for-location response, not an
// error page.
var ErrNoLocation = errors.New("no location fix available")

// DefaultLocationTimeout bounds how long a vendor query waits for the
// client's first location fix.
const DefaultLocationTimeout = 8 * time.Second

// LocationCell holds the location fix for one client session. The first
// write wins; later fixes are ignored so an in-flight search is never
// re-anchored mid-computation. Reads are cheap and concurrent.
type LocationCell struct {
	mu      sync.RWMutex
	loc     *domain.UserLocation
	ready   chan struct{}
	timeout time.Duration
}

// NewLocationCell builds an empty cell. A non-positive timeout falls
// back to DefaultLocationTimeout.
func NewLocationCell(timeout time.Duration) *LocationCell {
	if timeout <= 0 {
		timeout = DefaultLocationTimeout
	}
	return &LocationCell{
		ready:   make(chan struct{}),
		timeout: timeout,
	}
}

// Set stores the fix if the cell is still empty and reports whether the
// write took effect.
func (c *LocationCell) Set(loc domain.UserLocation) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loc != nil {
		return false
	}
	c.loc = &loc
	close(c.ready)
	return true
}

// Get returns the stored fix, or nil when none has arrived yet.
func (c *LocationCell) Get() *domain.UserLocation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.loc == nil {
		return nil
	}
	loc := *c.loc
	return &loc
}

// Await blocks until a fix is available, the context ends, or the cell's
// wait window expires. Expiry yields ErrNoLocation.
func (c *LocationCell) Await(ctx context.Context) (*domain.UserLocation, error) {
	if loc := c.Get(); loc != nil {
		return loc, nil
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-c.ready:
		return c.Get(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrNoLocation
	}
}

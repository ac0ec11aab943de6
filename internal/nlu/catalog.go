package nlu

import (
	"fmt"
	"strings"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

// defaultIntents is the built-in command table. Definition order matters:
// the matcher breaks ties by iterating the catalog in this order.
var defaultIntents = []domain.Intent{
	{Key: "home", Action: domain.RouteHome, Variants: []string{"home", "home page", "main page", "start"}},
	{Key: "markets", Action: domain.RouteMarkets, Variants: []string{"markets", "market", "mandi", "market list"}},
	{Key: "vendors", Action: domain.RouteVendors, Variants: []string{"vendors", "vendor list", "sellers", "shops"}},
	{Key: "prices", Action: domain.RoutePrices, Variants: []string{"prices", "price list", "rates", "vegetable prices"}},
	{Key: "orders", Action: domain.RouteOrders, Variants: []string{"orders", "my orders", "order history"}},
	{Key: "cart", Action: domain.RouteCart, Variants: []string{"cart", "my cart", "basket"}},
	{Key: "profile", Action: domain.RouteProfile, Variants: []string{"profile", "my profile", "account"}},
	{Key: "help", Action: domain.RouteHelp, Variants: []string{"help", "support", "need help"}},
	{Key: "back", Action: domain.ActionBack, Variants: []string{"back", "go back", "previous", "previous page"}},
}

// Catalog is the immutable set of canonical commands. It only exposes
// iteration; lookup strategy belongs to the Matcher.
type Catalog struct {
	intents []domain.Intent
}

// NewCatalog validates and freezes an intent table. Keys must be unique
// and non-empty; variants are stored lowercase.
func NewCatalog(intents []domain.Intent) (*Catalog, error) {
	seen := make(map[string]struct{}, len(intents))
	frozen := make([]domain.Intent, 0, len(intents))
	for _, in := range intents {
		if in.Key == "" {
			return nil, fmt.Errorf("intent with empty key")
		}
		if _, dup := seen[in.Key]; dup {
			return nil, fmt.Errorf("duplicate intent key %q", in.Key)
		}
		seen[in.Key] = struct{}{}

		variants := make([]string, len(in.Variants))
		for i, v := range in.Variants {
			variants[i] = strings.ToLower(v)
		}
		frozen = append(frozen, domain.Intent{Key: in.Key, Action: in.Action, Variants: variants})
	}
	return &Catalog{intents: frozen}, nil
}

// DefaultCatalog returns the built-in command catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultIntents)
	if err != nil {
		panic(err)
	}
	return c
}

// Intents returns the catalog entries in definition order. Callers must
// not mutate the returned slice.
func (c *Catalog) Intents() []domain.Intent {
	return c.intents
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.intents)
}

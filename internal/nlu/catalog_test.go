package nlu

import (
	"testing"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

func TestNewCatalog_RejectsDuplicateKeys(t *testing.T) {
	// Arrange
	intents := []domain.Intent{
		{Key: "markets", Action: domain.RouteMarkets, Variants: []string{"markets"}},
		{Key: "markets", Action: domain.RouteVendors, Variants: []string{"vendors"}},
	}

	// Act
	_, err := NewCatalog(intents)

	// Assert
	if err == nil {
		t.Fatal("expected error for duplicate key, got nil")
	}
}

func TestNewCatalog_RejectsEmptyKey(t *testing.T) {
	_, err := NewCatalog([]domain.Intent{{Key: "", Action: domain.RouteHome, Variants: []string{"home"}}})
	if err == nil {
		t.Fatal("expected error for empty key, got nil")
	}
}

func TestNewCatalog_LowercasesVariants(t *testing.T) {
	// Arrange
	intents := []domain.Intent{
		{Key: "markets", Action: domain.RouteMarkets, Variants: []string{"Markets", "MANDI"}},
	}

	// Act
	c, err := NewCatalog(intents)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got := c.Intents()[0].Variants
	if got[0] != "markets" || got[1] != "mandi" {
		t.Errorf("expected lowercased variants, got %v", got)
	}
}

func TestDefaultCatalog_KeysUnique(t *testing.T) {
	c := DefaultCatalog()

	if c.Len() == 0 {
		t.Fatal("default catalog is empty")
	}

	seen := make(map[string]bool)
	for _, in := range c.Intents() {
		if seen[in.Key] {
			t.Errorf("duplicate key %q in default catalog", in.Key)
		}
		seen[in.Key] = true
		if in.Action == "" {
			t.Errorf("intent %q has empty action", in.Key)
		}
		if len(in.Variants) == 0 {
			t.Errorf("intent %q has no variants", in.Key)
		}
	}
}

func TestDefaultCatalog_HasBackPseudoTarget(t *testing.T) {
	for _, in := range DefaultCatalog().Intents() {
		if in.Key == "back" {
			if in.Action != domain.ActionBack {
				t.Errorf("back intent action = %q, want %q", in.Action, domain.ActionBack)
			}
			return
		}
	}
	t.Fatal("default catalog has no back intent")
}

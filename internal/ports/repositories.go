package ports

import (
	"context"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

// VendorRepository gives read access to the vendor directory. The engine
// never writes through it.
type VendorRepository interface {
	FindAll(ctx context.Context) ([]domain.VendorRecord, error)
	FindByID(ctx context.Context, id string) (*domain.VendorRecord, error)
}

// PriceRepository gives read access to the vegetable price store.
// FindByVegetable returns (nil, nil) when no record exists.
type PriceRepository interface {
	FindByVegetable(ctx context.Context, vegetable string) (*domain.PriceRecord, error)
	FindAll(ctx context.Context) ([]domain.PriceRecord, error)
}

package mocks

import (
	"context"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

// MockVendorRepository is a mock implementation of VendorRepository
type MockVendorRepository struct {
	FindAllFunc  func(ctx context.Context) ([]domain.VendorRecord, error)
	FindByIDFunc func(ctx context.Context, id string) (*domain.VendorRecord, error)
}

func (m *MockVendorRepository) FindAll(ctx context.Context) ([]domain.VendorRecord, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []domain.VendorRecord{}, nil
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id string) (*domain.VendorRecord, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

// MockPriceRepository is a mock implementation of PriceRepository
type MockPriceRepository struct {
	FindByVegetableFunc func(ctx context.Context, vegetable string) (*domain.PriceRecord, error)
	FindAllFunc         func(ctx context.Context) ([]domain.PriceRecord, error)
}

func (m *MockPriceRepository) FindByVegetable(ctx context.Context, vegetable string) (*domain.PriceRecord, error) {
	if m.FindByVegetableFunc != nil {
		return m.FindByVegetableFunc(ctx, vegetable)
	}
	return nil, nil
}

func (m *MockPriceRepository) FindAll(ctx context.Context) ([]domain.PriceRecord, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []domain.PriceRecord{}, nil
}

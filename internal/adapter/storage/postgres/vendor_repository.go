package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/mandi-assist/internal/domain"
	"github.com/seu-repo/mandi-assist/internal/ports"
)

type VendorRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewVendorRepository(db *gorm.DB, log *zap.Logger) ports.VendorRepository {
	return &VendorRepository{
		db:  db,
		log: log,
	}
}

func (r *VendorRepository) FindAll(ctx context.Context) ([]domain.VendorRecord, error) {
	var vendors []domain.VendorRecord
	result := r.db.WithContext(ctx).Order("name ASC").Find(&vendors)
	if result.Error != nil {
		r.log.Error("Failed to load vendor directory", zap.Error(result.Error))
		return nil, result.Error
	}
	return vendors, nil
}

func (r *VendorRepository) FindByID(ctx context.Context, id string) (*domain.VendorRecord, error) {
	var vendor domain.VendorRecord
	result := r.db.WithContext(ctx).First(&vendor, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &vendor, nil
}

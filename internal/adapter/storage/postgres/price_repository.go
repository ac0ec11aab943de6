package postgres

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/mandi-assist/internal/domain"
	"github.com/seu-repo/mandi-assist/internal/ports"
)

type PriceRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPriceRepository(db *gorm.DB, log *zap.Logger) ports.PriceRepository {
	return &PriceRepository{
		db:  db,
		log: log,
	}
}

// FindByVegetable returns (nil, nil) on a store miss. Unknown produce is
// an ordinary answer, not a failure.
func (r *PriceRepository) FindByVegetable(ctx context.Context, vegetable string) (*domain.PriceRecord, error) {
	var rec domain.PriceRecord
	result := r.db.WithContext(ctx).First(&rec, "vegetable = ?", strings.ToLower(vegetable))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("Failed to load price record",
			zap.String("vegetable", vegetable),
			zap.Error(result.Error))
		return nil, result.Error
	}
	return &rec, nil
}

func (r *PriceRepository) FindAll(ctx context.Context) ([]domain.PriceRecord, error) {
	var recs []domain.PriceRecord
	result := r.db.WithContext(ctx).Order("vegetable ASC").Find(&recs)
	if result.Error != nil {
		return nil, result.Error
	}
	return recs, nil
}

package stores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/repo"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db/models"
)

// Repository handles store pricing configuration persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to pricing configuration operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindPricingConfig loads the configuration of a store with its tiers in display order.
func (r *Repository) FindPricingConfig(ctx context.Context, storeID uuid.UUID) (*models.StorePricingConfig, error) {
	var cfg models.StorePricingConfig
	if err := r.ForStore(ctx, storeID).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC").Order("min_quantity ASC")
		}).
		First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ReplacePricingConfigWithTx upserts the configuration row and swaps its tiers
// using the provided transaction.
func (r *Repository) ReplacePricingConfigWithTx(tx *gorm.DB, cfg *models.StorePricingConfig) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if cfg == nil || cfg.StoreID == uuid.Nil {
		return fmt.Errorf("pricing config with store id is required")
	}

	tiers := cfg.Tiers
	header := *cfg
	header.Tiers = nil

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"mode", "currency", "updated_at"}),
	}).Omit(clause.Associations).Create(&header).Error; err != nil {
		return err
	}

	if err := tx.Where("store_id = ?", cfg.StoreID).Delete(&models.StorePriceTier{}).Error; err != nil {
		return err
	}
	for i := range tiers {
		tiers[i].StoreID = cfg.StoreID
	}
	if len(tiers) > 0 {
		if err := tx.Create(&tiers).Error; err != nil {
			return err
		}
	}

	cfg.UpdatedAt = header.UpdatedAt
	cfg.Tiers = tiers
	return nil
}

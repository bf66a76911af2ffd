package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/repo"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db/models"
)

// Repository reads tenant-scoped products with their pricing data.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to catalog reads.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func preloadTiers(db *gorm.DB) *gorm.DB {
	return db.Preload("PriceTiers", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("min_quantity ASC").Order("sort_order ASC")
	})
}

// GetProduct loads a single product owned by storeID.
func (r *Repository) GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := preloadTiers(r.ForStore(ctx, storeID)).
		Where("id = ?", productID).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts loads the products of storeID among ids. Unknown ids are skipped.
func (r *Repository) ListProducts(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := preloadTiers(r.ForStore(ctx, storeID)).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

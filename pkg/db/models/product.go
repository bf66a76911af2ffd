package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a tenant-scoped catalog entry with its pricing fields.
type Product struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	StoreID         uuid.UUID           `gorm:"column:store_id;type:uuid;not null;index"`
	SKU             string              `gorm:"column:sku;not null"`
	Name            string              `gorm:"column:name;not null"`
	RetailPrice     decimal.Decimal     `gorm:"column:retail_price;type:numeric(12,2);not null"`
	WholesalePrice  decimal.NullDecimal `gorm:"column:wholesale_price;type:numeric(12,2)"`
	MinWholesaleQty int                 `gorm:"column:min_wholesale_qty;not null"`
	IsActive        bool                `gorm:"column:is_active;not null"`
	PriceTiers      []ProductPriceTier  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/enums"
)

// StorePricingConfig holds the pricing mode a store applies to its whole catalog.
type StorePricingConfig struct {
	StoreID   uuid.UUID         `gorm:"column:store_id;type:uuid;primaryKey"`
	Mode      enums.PricingMode `gorm:"column:mode;type:pricing_mode;not null"`
	Currency  enums.Currency    `gorm:"column:currency;type:char(3);not null"`
	Tiers     []StorePriceTier  `gorm:"foreignKey:StoreID;references:StoreID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// StorePriceTier is one gradual wholesale threshold of a store.
type StorePriceTier struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	StoreID     uuid.UUID       `gorm:"column:store_id;type:uuid;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	MinQuantity int             `gorm:"column:min_quantity;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	SortOrder   int             `gorm:"column:sort_order;not null"`
	IsActive    bool            `gorm:"column:is_active;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (t *StorePriceTier) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

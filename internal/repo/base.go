package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base provides the tenant-scoped foundation shared by domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// ForStore restricts every query built on the result to rows owned by storeID.
func (b Base) ForStore(ctx context.Context, storeID uuid.UUID) *gorm.DB {
	return b.DB(ctx).Where("store_id = ?", storeID)
}

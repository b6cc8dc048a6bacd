package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base provides a shared foundation for gorm-backed stores.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base bound to the provided GORM connection.
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

// WithTx returns a Base that issues queries on tx instead.
func (b Base) WithTx(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}

package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/angelmondragon/receipt-processor/pkg/db/types"
)

// Receipt is the persisted form of a scored receipt. Rows are insert-only.
type Receipt struct {
	ID           uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey"`
	Retailer     string                      `gorm:"column:retailer;not null"`
	PurchaseDate string                      `gorm:"column:purchase_date;type:varchar(10);not null"`
	PurchaseTime string                      `gorm:"column:purchase_time;type:varchar(5);not null"`
	TotalCents   int64                       `gorm:"column:total_cents;not null"`
	Items        dbtypes.JSON[[]ReceiptItem] `gorm:"column:items;type:text;not null"`
	Points       int64                       `gorm:"column:points;not null"`
	CreatedAt    time.Time                   `gorm:"column:created_at;autoCreateTime"`
}

// ReceiptItem is one line item inside Receipt.Items.
type ReceiptItem struct {
	ShortDescription string `json:"short_description"`
	PriceCents       int64  `json:"price_cents"`
}

func (Receipt) TableName() string { return "receipts" }

package receipts

import (
	"time"

	"github.com/google/uuid"
)

// Cents is a monetary amount in integer cents.
type Cents int64

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Receipt is a validated purchase record. Build one with ParsePayload.
type Receipt struct {
	Retailer     string
	PurchaseDate time.Time
	PurchaseTime TimeOfDay
	Items        []Item
	Total        Cents
}

type Item struct {
	ShortDescription string
	Price            Cents
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return time.Date(0, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format(TimeLayout)
}

// ScoredReceipt is what the store keeps: the accepted receipt and its points.
type ScoredReceipt struct {
	ID        uuid.UUID
	Receipt   Receipt
	Points    int64
	CreatedAt time.Time
}

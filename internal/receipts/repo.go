package receipts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/receipt-processor/internal/repo"
	"github.com/angelmondragon/receipt-processor/pkg/db"
	"github.com/angelmondragon/receipt-processor/pkg/db/models"
	dbtypes "github.com/angelmondragon/receipt-processor/pkg/db/types"
)

// Repository is the relational Store, backed by the receipts table.
type Repository struct {
	repo.Base
	newID IDGenerator
	inTx  bool
}

const putSavePoint = "receipt_put"

// NewRepository returns a Store over conn. The receipts table must already be
// migrated; a missing table surfaces as ErrStoreUnavailable.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn), newID: defaultIDGenerator}
}

// WithIDGenerator swaps the id source.
func (r *Repository) WithIDGenerator(gen IDGenerator) *Repository {
	r.newID = gen
	return r
}

// WithTx returns a Repository that writes inside tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{Base: r.Base.WithTx(tx), newID: r.newID, inTx: true}
}

// Put inserts rec under a fresh id, retrying on id collisions. Inside a
// transaction every attempt runs behind a savepoint: postgres aborts the
// whole transaction on a unique violation unless it is rolled back to one.
func (r *Repository) Put(ctx context.Context, rec ScoredReceipt) (uuid.UUID, error) {
	row := toModel(rec)
	conn := r.DB(ctx)
	for attempt := 0; attempt < maxPutAttempts; attempt++ {
		row.ID = r.newID()
		if r.inTx {
			if err := conn.SavePoint(putSavePoint).Error; err != nil {
				return uuid.Nil, fmt.Errorf("%w: savepoint: %w", ErrStoreUnavailable, err)
			}
		}
		err := conn.Create(&row).Error
		if err == nil {
			return row.ID, nil
		}
		if !db.IsUniqueViolation(err, "") {
			return uuid.Nil, fmt.Errorf("%w: insert receipt: %w", ErrStoreUnavailable, err)
		}
		if r.inTx {
			if err := conn.RollbackTo(putSavePoint).Error; err != nil {
				return uuid.Nil, fmt.Errorf("%w: rollback to savepoint: %w", ErrStoreUnavailable, err)
			}
		}
	}
	return uuid.Nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, ErrIDCollision)
}

func (r *Repository) Get(ctx context.Context, id string) (*ScoredReceipt, error) {
	parsed, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	var row models.Receipt
	if err := r.DB(ctx).Where("id = ?", parsed).Take(&row).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: select receipt: %w", ErrStoreUnavailable, err)
	}

	rec, err := fromModel(row)
	if err != nil {
		return nil, fmt.Errorf("%w: decode receipt %s: %w", ErrStoreUnavailable, parsed, err)
	}
	return rec, nil
}

func toModel(rec ScoredReceipt) models.Receipt {
	items := make([]models.ReceiptItem, 0, len(rec.Receipt.Items))
	for _, item := range rec.Receipt.Items {
		items = append(items, models.ReceiptItem{
			ShortDescription: item.ShortDescription,
			PriceCents:       int64(item.Price),
		})
	}
	return models.Receipt{
		Retailer:     rec.Receipt.Retailer,
		PurchaseDate: rec.Receipt.PurchaseDate.Format(DateLayout),
		PurchaseTime: rec.Receipt.PurchaseTime.String(),
		TotalCents:   int64(rec.Receipt.Total),
		Items:        dbtypes.NewJSON(items),
		Points:       rec.Points,
	}
}

func fromModel(row models.Receipt) (*ScoredReceipt, error) {
	date, err := time.Parse(DateLayout, row.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("purchase_date: %w", err)
	}
	tod, err := ParseTimeOfDay(row.PurchaseTime)
	if err != nil {
		return nil, fmt.Errorf("purchase_time: %w", err)
	}

	items := make([]Item, 0, len(row.Items.Val))
	for _, item := range row.Items.Val {
		items = append(items, Item{
			ShortDescription: item.ShortDescription,
			Price:            Cents(item.PriceCents),
		})
	}

	return &ScoredReceipt{
		ID: row.ID,
		Receipt: Receipt{
			Retailer:     row.Retailer,
			PurchaseDate: date,
			PurchaseTime: tod,
			Items:        items,
			Total:        Cents(row.TotalCents),
		},
		Points:    row.Points,
		CreatedAt: row.CreatedAt,
	}, nil
}

package receipts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	pkgerrors "github.com/angelmondragon/receipt-processor/pkg/errors"
	"github.com/angelmondragon/receipt-processor/pkg/logger"
	"github.com/angelmondragon/receipt-processor/pkg/metrics"
)

// Service is the receipt boundary: validate, score, store, and look up.
type Service interface {
	Process(ctx context.Context, payload Payload) (uuid.UUID, error)
	Points(ctx context.Context, id string) (int64, error)
}

type service struct {
	store   Store
	logg    *logger.Logger
	metrics *metrics.ReceiptMetrics
}

// NewService wires a receipt service. logg and m may be nil.
func NewService(store Store, logg *logger.Logger, m *metrics.ReceiptMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("receipt store required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{store: store, logg: logg, metrics: m}, nil
}

func (s *service) Process(ctx context.Context, payload Payload) (uuid.UUID, error) {
	rec, err := ParsePayload(payload)
	if err != nil {
		s.metrics.ObserveProcessed(metrics.OutcomeInvalid, 0)
		return uuid.Nil, err
	}

	points := Score(rec)
	if s.logg.Enabled(ctx, zerolog.DebugLevel) {
		dctx := s.logg.WithField(ctx, "breakdown", Breakdown(rec))
		s.logg.Debug(dctx, "receipt.scored")
	}

	id, err := s.store.Put(ctx, ScoredReceipt{Receipt: rec, Points: points})
	if err != nil {
		s.metrics.ObserveProcessed(metrics.OutcomeError, 0)
		s.logg.Error(ctx, "receipt.store_failed", err)
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing receipt")
	}

	s.metrics.ObserveProcessed(metrics.OutcomeAccepted, points)
	ctx = s.logg.WithFields(s.logg.WithReceiptID(ctx, id.String()), map[string]any{
		"points":   points,
		"retailer": rec.Retailer,
		"items":    len(rec.Items),
	})
	s.logg.Info(ctx, "receipt.processed")
	return id, nil
}

func (s *service) Points(ctx context.Context, id string) (int64, error) {
	rec, err := s.store.Get(ctx, id)
	switch {
	case err == nil:
		s.metrics.ObserveLookup(metrics.OutcomeFound)
		return rec.Points, nil
	case errors.Is(err, ErrNotFound):
		s.metrics.ObserveLookup(metrics.OutcomeNotFound)
		s.logg.Info(s.logg.WithReceiptID(ctx, id), "receipt.not_found")
		return 0, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "No receipt found for that ID.")
	default:
		s.metrics.ObserveLookup(metrics.OutcomeError)
		s.logg.Error(s.logg.WithReceiptID(ctx, id), "receipt.lookup_failed", err)
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading receipt")
	}
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/receipt-processor/api/responses"
	"github.com/angelmondragon/receipt-processor/api/validators"
	"github.com/angelmondragon/receipt-processor/internal/receipts"
	"github.com/angelmondragon/receipt-processor/pkg/logger"
	"github.com/angelmondragon/receipt-processor/pkg/types"
)

// ProcessReceipt handles POST /receipts/process.
func ProcessReceipt(svc receipts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload receipts.Payload
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := svc.Process(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteOK(w, types.ProcessResponse{ID: id.String()})
	}
}

// ReceiptPoints handles GET /receipts/{id}/points.
func ReceiptPoints(svc receipts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithReceiptID(ctx, id)
		}

		points, err := svc.Points(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteOK(w, types.PointsResponse{Points: points})
	}
}

package controllers

import (
	"net/http"

	"github.com/angelmondragon/receipt-processor/api/responses"
	"github.com/angelmondragon/receipt-processor/pkg/types"
)

const welcomeMessage = "Welcome to Receipt Processor. Use /receipts/process to submit a receipt or /receipts/<id>/points to get points."

func Home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteOK(w, types.MessageResponse{Message: welcomeMessage})
	}
}

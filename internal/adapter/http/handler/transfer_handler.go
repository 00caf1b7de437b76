package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/storeledger/internal/adapter/http/dto"
	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	TransferFunds(ctx context.Context, input usecase.TransferInput) (*domain.TransferRecord, error)
	GetTransfer(ctx context.Context, id string) (*domain.TransferRecord, error)
	GetTransferHistory(ctx context.Context, limit int) ([]*domain.TransferRecord, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create moves funds between two accounts.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid transfer", err)
		return
	}

	rec, err := h.transferUC.TransferFunds(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to create transfer", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(rec))
}

// Get retrieves a transfer with its legs.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.transferUC.GetTransfer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to get transfer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(rec))
}

// List returns the transfer history, newest first.
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.transferUC.GetTransferHistory(r.Context(), parseIntQuery(r, "limit", 50))
	if err != nil {
		writeDomainError(w, r, "failed to list transfers", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransfersResponse{
		Transfers: dto.TransfersFromDomain(records),
		Total:     int64(len(records)),
	})
}

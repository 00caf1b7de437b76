package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/storeledger/internal/adapter/http/dto"
	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/usecase"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	PostExpense(ctx context.Context, input usecase.PostEntryInput) (*domain.Entry, error)
	PostIncome(ctx context.Context, input usecase.PostEntryInput) (*domain.Entry, error)
	UpdateEntry(ctx context.Context, id string, input usecase.UpdateEntryInput) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	GetEntry(ctx context.Context, id string) (*domain.Entry, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.Entry, error)
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.Entry, error)
}

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	entryUC EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// PostExpense records an expense.
func (h *EntryHandler) PostExpense(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, h.entryUC.PostExpense)
}

// PostIncome records an income.
func (h *EntryHandler) PostIncome(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, h.entryUC.PostIncome)
}

func (h *EntryHandler) post(
	w http.ResponseWriter,
	r *http.Request,
	post func(context.Context, usecase.PostEntryInput) (*domain.Entry, error),
) {
	var req dto.PostEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid entry", err)
		return
	}

	entry, err := post(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to post entry", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Get retrieves an entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.entryUC.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to get entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Update edits entry metadata.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid entry update", err)
		return
	}

	entry, err := h.entryUC.UpdateEntry(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeDomainError(w, r, "failed to update entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Delete removes an entry and reverses its balance effect.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.entryUC.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, "failed to delete entry", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists entries filtered by date range, category, kind and account.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, r, "invalid date range", err)
		return
	}

	q := r.URL.Query()
	entries, err := h.entryUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		AccountID: q.Get("account_id"),
		Category:  q.Get("category"),
		Kind:      q.Get("kind"),
		From:      from,
		To:        to,
		Limit:     parseIntQuery(r, "limit", 100),
	})
	if err != nil {
		writeDomainError(w, r, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// ListByAccount lists the most recent entries of an account.
func (h *EntryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entryUC.ListByAccount(r.Context(), chi.URLParam(r, "id"), parseIntQuery(r, "limit", 100))
	if err != nil {
		writeDomainError(w, r, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

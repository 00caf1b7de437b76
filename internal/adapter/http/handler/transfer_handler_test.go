package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/storeledger/internal/adapter/http/dto"
	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/usecase"
)

type transferServiceStub struct {
	transferFn func(ctx context.Context, input usecase.TransferInput) (*domain.TransferRecord, error)
	getFn      func(ctx context.Context, id string) (*domain.TransferRecord, error)
	historyFn  func(ctx context.Context, limit int) ([]*domain.TransferRecord, error)
}

func (s *transferServiceStub) TransferFunds(ctx context.Context, input usecase.TransferInput) (*domain.TransferRecord, error) {
	return s.transferFn(ctx, input)
}

func (s *transferServiceStub) GetTransfer(ctx context.Context, id string) (*domain.TransferRecord, error) {
	return s.getFn(ctx, id)
}

func (s *transferServiceStub) GetTransferHistory(ctx context.Context, limit int) ([]*domain.TransferRecord, error) {
	return s.historyFn(ctx, limit)
}

func completedTransfer(id string) *domain.TransferRecord {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	t := &domain.Transfer{
		ID:             id,
		FromAccountID:  "acc-1",
		ToAccountID:    "acc-2",
		Amount:         decimal.NewFromInt(100),
		ExpenseEntryID: id + "-out",
		IncomeEntryID:  id + "-in",
		Date:           date,
	}
	expense := &domain.Entry{ID: id + "-out", Kind: domain.EntryKindExpense, Status: domain.EntryStatusPaid, AccountID: "acc-1", Amount: t.Amount, TransferID: id, Date: date}
	income := &domain.Entry{ID: id + "-in", Kind: domain.EntryKindIncome, Status: domain.EntryStatusReceived, AccountID: "acc-2", Amount: t.Amount, TransferID: id, Date: date}
	return domain.NewTransferRecord(t, expense, income)
}

func TestTransferHandler_Create_Success(t *testing.T) {
	var captured usecase.TransferInput

	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*domain.TransferRecord, error) {
			captured = input
			return completedTransfer("tx-1"), nil
		},
	})

	body, _ := json.Marshal(dto.CreateTransferRequest{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        "100",
		Date:          "2024-03-10",
	})

	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.FromAccountID != "acc-1" || captured.ToAccountID != "acc-2" || !captured.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
	if captured.Date == nil || captured.Date.Day() != 10 {
		t.Fatalf("expected parsed date, got %v", captured.Date)
	}

	var resp dto.TransferResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "tx-1" || resp.Status != "completed" || resp.Amount != "100.00" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Expense == nil || resp.Income == nil {
		t.Fatalf("expected both legs in response, got %+v", resp)
	}
}

func TestTransferHandler_Create_InvalidBody(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*domain.TransferRecord, error) {
			t.Fatal("TransferFunds should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewBufferString("{bad json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransferHandler_Create_InvalidAmount(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*domain.TransferRecord, error) {
			t.Fatal("TransferFunds should not be called on invalid amount")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.CreateTransferRequest{FromAccountID: "acc", ToAccountID: "acc2", Amount: "abc"})
	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransferHandler_Create_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"same account", domain.ErrSameAccount, http.StatusBadRequest},
		{"missing account", domain.ErrAccountNotFound, http.StatusNotFound},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransferHandler(&transferServiceStub{
				transferFn: func(ctx context.Context, input usecase.TransferInput) (*domain.TransferRecord, error) {
					return nil, tt.err
				},
			})

			body, _ := json.Marshal(dto.CreateTransferRequest{FromAccountID: "acc", ToAccountID: "acc2", Amount: "10"})
			req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestTransferHandler_Get(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.TransferRecord, error) {
			return completedTransfer(id), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transfers/tx-1", nil)
	req = setChiURLParam(req, "id", "tx-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTransferHandler_List(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		historyFn: func(ctx context.Context, limit int) ([]*domain.TransferRecord, error) {
			if limit != 5 {
				t.Fatalf("expected limit 5, got %d", limit)
			}
			return []*domain.TransferRecord{completedTransfer("tx-2"), completedTransfer("tx-1")}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transfers?limit=5", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListTransfersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || resp.Transfers[0].ID != "tx-2" {
		t.Fatalf("unexpected history %+v", resp)
	}
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/adapter/http/dto"
	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/usecase"
	"github.com/finbooks/finbooks/internal/usecase/mocks"
)

func newEntryHandlerFixture() (*EntryHandler, *mocks.MockClientBalanceRepository) {
	clientRepo := mocks.NewMockClientBalanceRepository()

	uc := usecase.NewEntryUseCase(
		mocks.NewMockTransactionManager(),
		mocks.NewMockRetrier(),
		mocks.NewMockEntryRepository(),
		clientRepo,
		mocks.NewMockRegisterRepository(),
		mocks.NewMockConverter(),
		mocks.NewMockIDGenerator(),
		mocks.NewMockNotifier(),
		nil,
	)

	return NewEntryHandler(uc), clientRepo
}

func TestEntryHandler_Create_Success(t *testing.T) {
	handler, clientRepo := newEntryHandlerFixture()

	clientID := "client-1"
	body, _ := json.Marshal(dto.EntryRequest{
		Direction: "income",
		Amount:    decimal.NewFromInt(100),
		Currency:  "USD",
		IsDebt:    true,
		ClientID:  &clientID,
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("expected entry ID to be assigned")
	}
	if resp.Direction != "income" || resp.Kind != string(domain.KindDebt) {
		t.Fatalf("expected entry fields to round-trip, got %+v", resp)
	}

	if got := clientRepo.Balance(clientID); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected client balance 100, got %s", got)
	}
}

func TestEntryHandler_Create_InvalidBody(t *testing.T) {
	handler, _ := newEntryHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewBufferString("{bad json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Create_InvalidDirection(t *testing.T) {
	handler, _ := newEntryHandlerFixture()

	body, _ := json.Marshal(dto.EntryRequest{
		Direction: "sideways",
		Amount:    decimal.NewFromInt(100),
		Currency:  "USD",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Create_InvalidAmount(t *testing.T) {
	handler, _ := newEntryHandlerFixture()

	body, _ := json.Marshal(dto.EntryRequest{
		Direction: "income",
		Amount:    decimal.Zero,
		Currency:  "USD",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Get_NotFound(t *testing.T) {
	handler, _ := newEntryHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries/missing", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "missing")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEntryHandler_Delete_ReversesBalance(t *testing.T) {
	handler, clientRepo := newEntryHandlerFixture()

	clientID := "client-1"
	body, _ := json.Marshal(dto.EntryRequest{
		Direction: "income",
		Amount:    decimal.NewFromInt(100),
		Currency:  "USD",
		IsDebt:    true,
		ClientID:  &clientID,
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	createReq := httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
	createRec := httptest.NewRecorder()
	handler.Create(createRec, createReq)
	if createRec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", createRec.Code)
	}

	var created dto.EntryResponse
	if err := json.Unmarshal(createRec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	delReq := httptest.NewRequest(http.MethodDelete, "/api/v1/entries/"+created.ID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", created.ID)
	delReq = delReq.WithContext(context.WithValue(delReq.Context(), chi.RouteCtxKey, rctx))
	delRec := httptest.NewRecorder()

	handler.Delete(delRec, delReq)

	if delRec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", delRec.Code)
	}

	if got := clientRepo.Balance(clientID); !got.IsZero() {
		t.Fatalf("expected client balance back to zero, got %s", got)
	}
}

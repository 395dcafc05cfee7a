package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/memberledger/internal/adapter/http/dto"
	"github.com/iho/memberledger/internal/domain"
)

type billServiceStub struct {
	listFn      func(ctx context.Context, memberID int64, filter domain.BillFilter) ([]*domain.Bill, int64, error)
	reconcileFn func(ctx context.Context, memberID int64) (*domain.Reconciliation, error)
}

func (s *billServiceStub) ListByMember(ctx context.Context, memberID int64, filter domain.BillFilter) ([]*domain.Bill, int64, error) {
	return s.listFn(ctx, memberID, filter)
}

func (s *billServiceStub) Reconcile(ctx context.Context, memberID int64) (*domain.Reconciliation, error) {
	return s.reconcileFn(ctx, memberID)
}

func TestBillHandler_ListByMember(t *testing.T) {
	handler := NewBillHandler(&billServiceStub{
		listFn: func(ctx context.Context, memberID int64, filter domain.BillFilter) ([]*domain.Bill, int64, error) {
			if memberID != 7 || filter.Kind == nil || *filter.Kind != domain.BillKindBalance || filter.Direction != nil {
				t.Fatalf("unexpected call %d %+v", memberID, filter)
			}
			return []*domain.Bill{{
				ID:        "b1",
				MemberID:  7,
				Kind:      domain.BillKindBalance,
				Direction: domain.DirectionIncrement,
				Amount:    decimal.NewFromInt(25),
			}}, 1, nil
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/members/7/bills?kind=balance", nil), "id", "7")
	rec := httptest.NewRecorder()
	handler.ListByMember(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListBillsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 || resp.Bills[0].Amount != "25.00" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestBillHandler_ListInvalidKind(t *testing.T) {
	handler := NewBillHandler(&billServiceStub{
		listFn: func(ctx context.Context, memberID int64, filter domain.BillFilter) ([]*domain.Bill, int64, error) {
			return nil, 0, domain.ErrInvalidBillKind
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/members/7/bills?kind=coins", nil), "id", "7")
	rec := httptest.NewRecorder()
	handler.ListByMember(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBillHandler_Reconcile(t *testing.T) {
	handler := NewBillHandler(&billServiceStub{
		reconcileFn: func(ctx context.Context, memberID int64) (*domain.Reconciliation, error) {
			return &domain.Reconciliation{MemberID: memberID, BalanceMatches: true, IntegralMatches: true}, nil
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/members/7/reconciliation", nil), "id", "7")
	rec := httptest.NewRecorder()
	handler.Reconcile(rec, req)

	var resp dto.ReconciliationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if rec.Code != http.StatusOK || !resp.Consistent || resp.MemberID != 7 {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}
}

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

	"github.com/iho/memberledger/internal/adapter/http/dto"
	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/usecase"
)

type balanceServiceStub struct {
	incrementFn func(ctx context.Context, input usecase.MutationInput) (*domain.Member, error)
	decrementFn func(ctx context.Context, input usecase.MutationInput) (*domain.Member, error)
}

func (s *balanceServiceStub) Increment(ctx context.Context, input usecase.MutationInput) (*domain.Member, error) {
	return s.incrementFn(ctx, input)
}

func (s *balanceServiceStub) Decrement(ctx context.Context, input usecase.MutationInput) (*domain.Member, error) {
	return s.decrementFn(ctx, input)
}

func mutationRequest(t *testing.T, path, id, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	return setChiURLParam(req, "id", id)
}

func TestBalanceHandler_Increment_Success(t *testing.T) {
	var captured usecase.MutationInput
	var hadDeadline bool
	handler := NewBalanceHandler(&balanceServiceStub{
		incrementFn: func(ctx context.Context, input usecase.MutationInput) (*domain.Member, error) {
			captured = input
			_, hadDeadline = ctx.Deadline()
			return &domain.Member{ID: 7, Balance: decimal.RequireFromString("125"), Integral: 50}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Increment(rec, mutationRequest(t, "/members/7/increment", "7", `{"balance":"25.00"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.MemberID != 7 || captured.Balance == nil || !captured.Balance.Equal(decimal.NewFromInt(25)) || captured.Integral != nil {
		t.Fatalf("unexpected input %+v", captured)
	}
	if !hadDeadline {
		t.Fatalf("expected mutation to run under a deadline")
	}

	var resp dto.MemberResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Balance != "125.00" || resp.Integral != 50 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestBalanceHandler_Increment_AcceptsBareNumber(t *testing.T) {
	var captured usecase.MutationInput
	handler := NewBalanceHandler(&balanceServiceStub{
		incrementFn: func(ctx context.Context, input usecase.MutationInput) (*domain.Member, error) {
			captured = input
			return &domain.Member{ID: 7, Balance: decimal.RequireFromString("125.5"), Integral: 50}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Increment(rec, mutationRequest(t, "/members/7/increment", "7", `{"balance":25.5,"integral":3}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Balance == nil || !captured.Balance.Equal(decimal.RequireFromString("25.5")) {
		t.Fatalf("unexpected balance %v", captured.Balance)
	}
	if captured.Integral == nil || *captured.Integral != 3 {
		t.Fatalf("unexpected integral %v", captured.Integral)
	}
}

func TestBalanceHandler_Decrement_AbsentMember(t *testing.T) {
	handler := NewBalanceHandler(&balanceServiceStub{
		decrementFn: func(ctx context.Context, input usecase.MutationInput) (*domain.Member, error) {
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Decrement(rec, mutationRequest(t, "/members/99/decrement", "99", `{"balance":"10.00"}`))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBalanceHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		body   string
		err    error
		status int
	}{
		{name: "bad id", id: "x", body: `{}`, status: http.StatusBadRequest},
		{name: "bad json", id: "7", body: `{bad`, status: http.StatusBadRequest},
		{name: "unknown field", id: "7", body: `{"points":1}`, status: http.StatusBadRequest},
		{name: "malformed amount", id: "7", body: `{"balance":"ten"}`, status: http.StatusBadRequest},
		{name: "invalid amount", id: "7", body: `{"balance":"-1"}`, err: domain.ErrInvalidAmount, status: http.StatusBadRequest},
		{name: "policy", id: "7", body: `{"integral":500}`, err: domain.ErrNegativeIntegralNotAllowed, status: http.StatusUnprocessableEntity},
		{name: "storage", id: "7", body: `{"integral":1}`, err: domain.NewStorageError("commit", context.Canceled), status: http.StatusInternalServerError},
		{name: "timeout", id: "7", body: `{"integral":1}`, err: context.DeadlineExceeded, status: http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewBalanceHandler(&balanceServiceStub{
				decrementFn: func(ctx context.Context, input usecase.MutationInput) (*domain.Member, error) {
					if tt.err == nil {
						t.Fatalf("service should not be called")
					}
					return nil, tt.err
				},
			})

			rec := httptest.NewRecorder()
			handler.Decrement(rec, mutationRequest(t, "/members/"+tt.id+"/decrement", tt.id, tt.body))
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestBalanceHandler_TimeoutIsApplied(t *testing.T) {
	handler := NewBalanceHandler(&balanceServiceStub{
		incrementFn: func(ctx context.Context, input usecase.MutationInput) (*domain.Member, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	})
	handler.timeout = 10 * time.Millisecond

	rec := httptest.NewRecorder()
	handler.Increment(rec, mutationRequest(t, "/members/7/increment", "7", `{"integral":1}`))

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", rec.Code)
	}
}

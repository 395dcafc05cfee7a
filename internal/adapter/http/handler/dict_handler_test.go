package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/usecase"
)

type dictServiceStub struct {
	createFn    func(ctx context.Context, input usecase.CreateDictInput) (*domain.Dict, error)
	getFn       func(ctx context.Context, id int64) (*domain.Dict, error)
	getBySignFn func(ctx context.Context, sign string) (*domain.Dict, error)
	listFn      func(ctx context.Context, filter domain.DictFilter) ([]*domain.Dict, int64, error)
	updateFn    func(ctx context.Context, input usecase.UpdateDictInput) (*domain.Dict, error)
	deleteFn    func(ctx context.Context, id int64) error
}

func (s *dictServiceStub) CreateDict(ctx context.Context, input usecase.CreateDictInput) (*domain.Dict, error) {
	return s.createFn(ctx, input)
}

func (s *dictServiceStub) GetDict(ctx context.Context, id int64) (*domain.Dict, error) {
	return s.getFn(ctx, id)
}

func (s *dictServiceStub) GetDictBySign(ctx context.Context, sign string) (*domain.Dict, error) {
	return s.getBySignFn(ctx, sign)
}

func (s *dictServiceStub) ListDicts(ctx context.Context, filter domain.DictFilter) ([]*domain.Dict, int64, error) {
	return s.listFn(ctx, filter)
}

func (s *dictServiceStub) UpdateDict(ctx context.Context, input usecase.UpdateDictInput) (*domain.Dict, error) {
	return s.updateFn(ctx, input)
}

func (s *dictServiceStub) DeleteDict(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func TestDictHandler_GetBySign(t *testing.T) {
	handler := NewDictHandler(&dictServiceStub{
		getBySignFn: func(ctx context.Context, sign string) (*domain.Dict, error) {
			if sign != "member_level" {
				return nil, domain.ErrDictNotFound
			}
			return &domain.Dict{ID: 1, Sign: sign}, nil
		},
	})

	for sign, status := range map[string]int{"member_level": http.StatusOK, "missing": http.StatusNotFound} {
		req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/dicts/sign/"+sign, nil), "sign", sign)
		rec := httptest.NewRecorder()
		handler.GetBySign(rec, req)
		if rec.Code != status {
			t.Fatalf("sign %s: expected %d, got %d", sign, status, rec.Code)
		}
	}
}

func TestDictHandler_UpdateNothing(t *testing.T) {
	handler := NewDictHandler(&dictServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateDictInput) (*domain.Dict, error) {
			return nil, domain.ErrNothingToPersist
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodPut, "/dicts/1", bytes.NewBufferString(`{}`)), "id", "1")
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDictHandler_ListStatusFilter(t *testing.T) {
	handler := NewDictHandler(&dictServiceStub{
		listFn: func(ctx context.Context, filter domain.DictFilter) ([]*domain.Dict, int64, error) {
			if filter.Status == nil || *filter.Status != domain.DictStatusDisabled {
				t.Fatalf("status not passed: %+v", filter)
			}
			return nil, 0, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/dicts?status=0", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

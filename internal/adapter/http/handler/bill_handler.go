package handler

import (
	"context"
	"net/http"

	"github.com/iho/memberledger/internal/adapter/http/dto"
	"github.com/iho/memberledger/internal/domain"
)

// BillService defines the behavior needed by BillHandler.
type BillService interface {
	ListByMember(ctx context.Context, memberID int64, filter domain.BillFilter) ([]*domain.Bill, int64, error)
	Reconcile(ctx context.Context, memberID int64) (*domain.Reconciliation, error)
}

// BillHandler serves a member's bills and reconciliation report.
type BillHandler struct {
	billUC BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billUC BillService) *BillHandler {
	return &BillHandler{billUC: billUC}
}

// ListByMember lists bills for a member, optionally filtered by kind and direction.
func (h *BillHandler) ListByMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member ID", err.Error())
		return
	}

	filter := domain.BillFilter{
		Limit:  parseIntQuery(r, "limit", defaultPageSize),
		Offset: parseIntQuery(r, "offset", 0),
	}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		k := domain.BillKind(kind)
		filter.Kind = &k
	}
	if direction := r.URL.Query().Get("direction"); direction != "" {
		d := domain.Direction(direction)
		filter.Direction = &d
	}

	bills, total, err := h.billUC.ListByMember(r.Context(), id, filter)
	if err != nil {
		writeDomainError(w, r, "failed to list bills", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListBillsResponse{
		Bills: dto.BillsFromDomain(bills),
		Total: total,
	})
}

// Reconcile compares a member's stored values with the sum of its bills.
func (h *BillHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member ID", err.Error())
		return
	}

	report, err := h.billUC.Reconcile(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to reconcile member", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromDomain(report))
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/memberledger/internal/adapter/http/dto"
	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/usecase"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	Increment(ctx context.Context, input usecase.MutationInput) (*domain.Member, error)
	Decrement(ctx context.Context, input usecase.MutationInput) (*domain.Member, error)
}

// BalanceHandler handles balance and integral mutations.
type BalanceHandler struct {
	balanceUC BalanceService
	timeout   time.Duration
}

// NewBalanceHandler creates a new BalanceHandler. Each mutation is bounded
// by usecase.DefaultTransactionTimeout.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{
		balanceUC: balanceUC,
		timeout:   usecase.DefaultTransactionTimeout,
	}
}

// Increment adds the requested amounts to a member.
func (h *BalanceHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, domain.DirectionIncrement)
}

// Decrement subtracts the requested amounts from a member.
func (h *BalanceHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, domain.DirectionDecrement)
}

func (h *BalanceHandler) mutate(w http.ResponseWriter, r *http.Request, direction domain.Direction) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member ID", err.Error())
		return
	}

	var req dto.MutationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := req.ToUseCaseInput(id)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var member *domain.Member
	if direction == domain.DirectionIncrement {
		member, err = h.balanceUC.Increment(ctx, input)
	} else {
		member, err = h.balanceUC.Decrement(ctx, input)
	}
	if err != nil {
		writeDomainError(w, r, "failed to "+string(direction)+" member", err)
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member not found", domain.ErrMemberNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MemberFromDomain(member))
}

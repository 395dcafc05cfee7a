package handler

import (
	"context"
	"net/http"

	"github.com/iho/memberledger/internal/adapter/http/dto"
	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/usecase"
)

// MemberService defines the behavior needed by MemberHandler.
type MemberService interface {
	CreateMember(ctx context.Context, input usecase.CreateMemberInput) (*domain.Member, error)
	GetMember(ctx context.Context, id int64) (*domain.Member, error)
	ListMembers(ctx context.Context, filter domain.MemberFilter) ([]*domain.Member, int64, error)
	UpdateMember(ctx context.Context, input usecase.UpdateMemberInput) (*domain.Member, error)
	DeleteMember(ctx context.Context, id int64) error
	RecordLogin(ctx context.Context, id int64, ip string) (*domain.Member, error)
}

// MemberHandler handles member CRUD requests.
type MemberHandler struct {
	memberUC MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberUC MemberService) *MemberHandler {
	return &MemberHandler{memberUC: memberUC}
}

// Create creates a new member.
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	member, err := h.memberUC.CreateMember(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to create member", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MemberFromDomain(member))
}

// Get retrieves a member by ID.
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member ID", err.Error())
		return
	}

	member, err := h.memberUC.GetMember(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get member", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MemberFromDomain(member))
}

// List lists members. Supported filters: keyword, status, sex, is_promoter,
// unique_code, email.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.MemberFilter{
		Keyword:    optionalString(r, "keyword"),
		UniqueCode: optionalString(r, "unique_code"),
		Email:      optionalString(r, "email"),
		Limit:      parseIntQuery(r, "limit", defaultPageSize),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	status, err := optionalInt32(r, "status")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid status filter", err.Error())
		return
	}
	if status != nil {
		s := domain.MemberStatus(*status)
		filter.Status = &s
	}

	if filter.Sex, err = optionalInt32(r, "sex"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid sex filter", err.Error())
		return
	}
	if filter.IsPromoter, err = optionalBool(r, "is_promoter"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid is_promoter filter", err.Error())
		return
	}

	members, total, err := h.memberUC.ListMembers(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, "failed to list members", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMembersResponse{
		Members: dto.MembersFromDomain(members),
		Total:   total,
	})
}

// Update changes a member's profile fields.
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member ID", err.Error())
		return
	}

	var req dto.UpdateMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	member, err := h.memberUC.UpdateMember(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeDomainError(w, r, "failed to update member", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MemberFromDomain(member))
}

// Delete soft-deletes a member.
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member ID", err.Error())
		return
	}

	if err := h.memberUC.DeleteMember(r.Context(), id); err != nil {
		writeDomainError(w, r, "failed to delete member", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordLogin stamps a member's last login with the caller's address.
// RemoteAddr already carries the forwarded client address when RealIP runs.
func (h *MemberHandler) RecordLogin(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member ID", err.Error())
		return
	}

	member, err := h.memberUC.RecordLogin(r.Context(), id, clientIP(r))
	if err != nil {
		writeDomainError(w, r, "failed to record login", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MemberFromDomain(member))
}

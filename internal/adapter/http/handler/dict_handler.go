package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/memberledger/internal/adapter/http/dto"
	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/usecase"
)

// DictService defines the behavior needed by DictHandler.
type DictService interface {
	CreateDict(ctx context.Context, input usecase.CreateDictInput) (*domain.Dict, error)
	GetDict(ctx context.Context, id int64) (*domain.Dict, error)
	GetDictBySign(ctx context.Context, sign string) (*domain.Dict, error)
	ListDicts(ctx context.Context, filter domain.DictFilter) ([]*domain.Dict, int64, error)
	UpdateDict(ctx context.Context, input usecase.UpdateDictInput) (*domain.Dict, error)
	DeleteDict(ctx context.Context, id int64) error
}

// DictHandler handles dictionary requests.
type DictHandler struct {
	dictUC DictService
}

// NewDictHandler creates a new DictHandler.
func NewDictHandler(dictUC DictService) *DictHandler {
	return &DictHandler{dictUC: dictUC}
}

// Create creates a dictionary entry.
func (h *DictHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDictRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	dict, err := h.dictUC.CreateDict(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to create dictionary", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.DictFromDomain(dict))
}

// Get retrieves a dictionary entry by ID.
func (h *DictHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dictionary ID", err.Error())
		return
	}

	dict, err := h.dictUC.GetDict(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get dictionary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DictFromDomain(dict))
}

// GetBySign retrieves a dictionary entry by its sign.
func (h *DictHandler) GetBySign(w http.ResponseWriter, r *http.Request) {
	sign := chi.URLParam(r, "sign")
	if sign == "" {
		writeError(w, http.StatusBadRequest, "missing dictionary sign", "")
		return
	}

	dict, err := h.dictUC.GetDictBySign(r.Context(), sign)
	if err != nil {
		writeDomainError(w, r, "failed to get dictionary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DictFromDomain(dict))
}

// List lists dictionary entries. Supported filters: keyword, status, sign.
func (h *DictHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.DictFilter{
		Keyword: optionalString(r, "keyword"),
		Sign:    optionalString(r, "sign"),
		Limit:   parseIntQuery(r, "limit", defaultPageSize),
		Offset:  parseIntQuery(r, "offset", 0),
	}

	status, err := optionalInt32(r, "status")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid status filter", err.Error())
		return
	}
	if status != nil {
		s := domain.DictStatus(*status)
		filter.Status = &s
	}

	dicts, total, err := h.dictUC.ListDicts(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, "failed to list dictionaries", err)
		return
	}

	resp := dto.ListDictsResponse{
		Dicts: make([]*dto.DictResponse, len(dicts)),
		Total: total,
	}
	for i, d := range dicts {
		resp.Dicts[i] = dto.DictFromDomain(d)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Update changes a dictionary entry.
func (h *DictHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dictionary ID", err.Error())
		return
	}

	var req dto.UpdateDictRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	dict, err := h.dictUC.UpdateDict(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeDomainError(w, r, "failed to update dictionary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DictFromDomain(dict))
}

// Delete soft-deletes a dictionary entry.
func (h *DictHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dictionary ID", err.Error())
		return
	}

	if err := h.dictUC.DeleteDict(r.Context(), id); err != nil {
		writeDomainError(w, r, "failed to delete dictionary", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

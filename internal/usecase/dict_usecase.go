package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/memberledger/internal/domain"
)

const dictSignCachePrefix = "dict:sign:"

// DictUseCase manages system dictionaries. Lookups by sign are read through cache.
type DictUseCase struct {
	dictRepo DictRepository
	cache    Cache
	cacheTTL time.Duration
	metrics  CacheRecorder
	now      func() time.Time
}

// NewDictUseCase creates a new DictUseCase. cache and metrics may be nil.
func NewDictUseCase(dictRepo DictRepository, cache Cache, cacheTTL time.Duration, metrics CacheRecorder) *DictUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultDictCacheTTL
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}

	return &DictUseCase{
		dictRepo: dictRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		now:      time.Now,
	}
}

// CreateDictInput represents input for creating a dictionary entry.
type CreateDictInput struct {
	Name   string
	Sign   string
	Remark string
	Status *domain.DictStatus
}

// CreateDict creates a dictionary entry with a unique sign.
func (uc *DictUseCase) CreateDict(ctx context.Context, input CreateDictInput) (*domain.Dict, error) {
	sign := strings.TrimSpace(input.Sign)
	if err := domain.ValidateDict(input.Name, sign); err != nil {
		return nil, err
	}

	status := domain.DictStatusEnabled
	if input.Status != nil {
		if err := validateDictStatus(*input.Status); err != nil {
			return nil, err
		}
		status = *input.Status
	}

	if err := uc.ensureSignFree(ctx, sign, nil); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	return uc.dictRepo.Create(ctx, &domain.Dict{
		Name:      strings.TrimSpace(input.Name),
		Sign:      sign,
		Remark:    input.Remark,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// GetDict retrieves a dictionary entry by id.
func (uc *DictUseCase) GetDict(ctx context.Context, id int64) (*domain.Dict, error) {
	return uc.dictRepo.GetByID(ctx, id)
}

// GetDictBySign retrieves a dictionary entry by sign, serving from cache when possible.
// Cache failures fall back to the repository.
func (uc *DictUseCase) GetDictBySign(ctx context.Context, sign string) (*domain.Dict, error) {
	log := zerolog.Ctx(ctx)

	if uc.cache != nil {
		raw, err := uc.cache.Get(ctx, dictSignCachePrefix+sign)
		switch {
		case err == nil:
			var dict domain.Dict
			if jsonErr := json.Unmarshal(raw, &dict); jsonErr == nil {
				uc.metrics.DictCacheLookup(true)
				return &dict, nil
			}
			log.Warn().Str("sign", sign).Msg("discarding undecodable dictionary cache entry")
		case !errors.Is(err, ErrCacheMiss):
			log.Warn().Err(err).Str("sign", sign).Msg("dictionary cache read failed")
		}
		uc.metrics.DictCacheLookup(false)
	}

	dict, err := uc.dictRepo.GetBySign(ctx, sign)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(dict); err == nil {
			if err := uc.cache.Set(ctx, dictSignCachePrefix+sign, raw, uc.cacheTTL); err != nil {
				log.Warn().Err(err).Str("sign", sign).Msg("dictionary cache write failed")
			}
		}
	}

	return dict, nil
}

// ListDicts returns one page of dictionaries matching filter and the total match count.
func (uc *DictUseCase) ListDicts(ctx context.Context, filter domain.DictFilter) ([]*domain.Dict, int64, error) {
	filter.Limit, filter.Offset = domain.NormalizePagination(filter.Limit, filter.Offset)
	if filter.Keyword != nil && strings.TrimSpace(*filter.Keyword) == "" {
		filter.Keyword = nil
	}

	dicts, err := uc.dictRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.dictRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return dicts, total, nil
}

// UpdateDictInput carries the fields to change. Nil fields are kept.
type UpdateDictInput struct {
	ID     int64
	Name   *string
	Sign   *string
	Remark *string
	Status *domain.DictStatus
}

// UpdateDict changes a dictionary entry and evicts its cached lookups.
func (uc *DictUseCase) UpdateDict(ctx context.Context, input UpdateDictInput) (*domain.Dict, error) {
	if input.Name == nil && input.Sign == nil && input.Remark == nil && input.Status == nil {
		return nil, domain.ErrNothingToPersist
	}

	dict, err := uc.dictRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	oldSign := dict.Sign

	if input.Name != nil {
		dict.Name = strings.TrimSpace(*input.Name)
	}
	if input.Sign != nil {
		dict.Sign = strings.TrimSpace(*input.Sign)
	}
	if err := domain.ValidateDict(dict.Name, dict.Sign); err != nil {
		return nil, err
	}
	if dict.Sign != oldSign {
		if err := uc.ensureSignFree(ctx, dict.Sign, &dict.ID); err != nil {
			return nil, err
		}
	}
	if input.Remark != nil {
		dict.Remark = *input.Remark
	}
	if input.Status != nil {
		if err := validateDictStatus(*input.Status); err != nil {
			return nil, err
		}
		dict.Status = *input.Status
	}
	dict.UpdatedAt = uc.now().UTC()

	updated, err := uc.dictRepo.Update(ctx, dict)
	if err != nil {
		return nil, err
	}

	uc.evict(ctx, oldSign, updated.Sign)
	return updated, nil
}

// DeleteDict soft deletes a dictionary entry and evicts its cached lookup.
func (uc *DictUseCase) DeleteDict(ctx context.Context, id int64) error {
	dict, err := uc.dictRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.dictRepo.SoftDelete(ctx, id, uc.now().UTC()); err != nil {
		return err
	}

	uc.evict(ctx, dict.Sign)
	return nil
}

func (uc *DictUseCase) ensureSignFree(ctx context.Context, sign string, excludeID *int64) error {
	n, err := uc.dictRepo.Count(ctx, domain.DictFilter{Sign: &sign, ExcludeID: excludeID})
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrDictAlreadyExists
	}
	return nil
}

func (uc *DictUseCase) evict(ctx context.Context, signs ...string) {
	if uc.cache == nil {
		return
	}
	for _, sign := range signs {
		if err := uc.cache.Delete(ctx, dictSignCachePrefix+sign); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("sign", sign).Msg("dictionary cache eviction failed")
		}
	}
}

func validateDictStatus(status domain.DictStatus) error {
	if status != domain.DictStatusEnabled && status != domain.DictStatusDisabled {
		return domain.ErrInvalidStatus
	}
	return nil
}

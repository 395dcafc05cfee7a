package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/infrastructure/postgres/generated"
)

// DictRepository implements usecase.DictRepository.
type DictRepository struct {
	queries *generated.Queries
}

// NewDictRepository creates a new DictRepository.
func NewDictRepository(db generated.DBTX) *DictRepository {
	return &DictRepository{
		queries: generated.New(db),
	}
}

// Create inserts a dictionary entry.
func (r *DictRepository) Create(ctx context.Context, dict *domain.Dict) (*domain.Dict, error) {
	row, err := r.queries.CreateSystemDict(ctx, generated.CreateSystemDictParams{
		Name:      dict.Name,
		Sign:      dict.Sign,
		Remark:    dict.Remark,
		Status:    int32(dict.Status),
		CreatedAt: timeToPgTimestamptz(dict.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(dict.UpdatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDictAlreadyExists
		}
		return nil, err
	}

	return rowToDict(row), nil
}

// GetByID retrieves a live dictionary entry by id.
func (r *DictRepository) GetByID(ctx context.Context, id int64) (*domain.Dict, error) {
	row, err := r.queries.GetSystemDictByID(ctx, id)
	if err != nil {
		return nil, dictErr(err)
	}

	return rowToDict(row), nil
}

// GetBySign retrieves a live dictionary entry by sign.
func (r *DictRepository) GetBySign(ctx context.Context, sign string) (*domain.Dict, error) {
	row, err := r.queries.GetSystemDictBySign(ctx, sign)
	if err != nil {
		return nil, dictErr(err)
	}

	return rowToDict(row), nil
}

// Update writes all mutable fields of a dictionary entry.
func (r *DictRepository) Update(ctx context.Context, dict *domain.Dict) (*domain.Dict, error) {
	row, err := r.queries.UpdateSystemDict(ctx, generated.UpdateSystemDictParams{
		ID:        dict.ID,
		Name:      dict.Name,
		Sign:      dict.Sign,
		Remark:    dict.Remark,
		Status:    int32(dict.Status),
		UpdatedAt: timeToPgTimestamptz(dict.UpdatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDictAlreadyExists
		}
		return nil, dictErr(err)
	}

	return rowToDict(row), nil
}

// SoftDelete marks a dictionary entry deleted.
func (r *DictRepository) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	n, err := r.queries.SoftDeleteSystemDict(ctx, generated.SoftDeleteSystemDictParams{
		ID:        id,
		DeletedAt: timeToPgTimestamptz(deletedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDictNotFound
	}

	return nil
}

// List lists live dictionary entries matching filter.
func (r *DictRepository) List(ctx context.Context, filter domain.DictFilter) ([]*domain.Dict, error) {
	rows, err := r.queries.ListSystemDicts(ctx, generated.ListSystemDictsParams{
		Keyword:   likeArg(filter.Keyword),
		Status:    int4Arg(filter.Status),
		Sign:      textArg(filter.Sign),
		ExcludeID: int8Arg(filter.ExcludeID),
		Limit:     int32(filter.Limit),
		Offset:    int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	dicts := make([]*domain.Dict, 0, len(rows))
	for _, row := range rows {
		dicts = append(dicts, rowToDict(row))
	}

	return dicts, nil
}

// Count counts live dictionary entries matching filter.
func (r *DictRepository) Count(ctx context.Context, filter domain.DictFilter) (int64, error) {
	return r.queries.CountSystemDicts(ctx, generated.CountSystemDictsParams{
		Keyword:   likeArg(filter.Keyword),
		Status:    int4Arg(filter.Status),
		Sign:      textArg(filter.Sign),
		ExcludeID: int8Arg(filter.ExcludeID),
	})
}

func dictErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDictNotFound
	}
	return err
}

func rowToDict(row generated.SystemDict) *domain.Dict {
	return &domain.Dict{
		ID:        row.ID,
		Name:      row.Name,
		Sign:      row.Sign,
		Remark:    row.Remark,
		Status:    domain.DictStatus(row.Status),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
		DeletedAt: pgTimestamptzToPtr(row.DeletedAt),
	}
}

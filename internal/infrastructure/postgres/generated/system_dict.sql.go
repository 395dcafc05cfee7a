package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countSystemDicts = `-- name: CountSystemDicts :one
SELECT COUNT(*) FROM system_dicts
WHERE deleted_at IS NULL
  AND ($1::text IS NULL OR name ILIKE '%' || $1::text || '%' OR sign ILIKE '%' || $1::text || '%')
  AND ($2::int IS NULL OR status = $2::int)
  AND ($3::text IS NULL OR sign = $3::text)
  AND ($4::bigint IS NULL OR id <> $4::bigint)
`

type CountSystemDictsParams struct {
	Keyword   pgtype.Text `json:"keyword"`
	Status    pgtype.Int4 `json:"status"`
	Sign      pgtype.Text `json:"sign"`
	ExcludeID pgtype.Int8 `json:"exclude_id"`
}

func (q *Queries) CountSystemDicts(ctx context.Context, arg CountSystemDictsParams) (int64, error) {
	row := q.db.QueryRow(ctx, countSystemDicts,
		arg.Keyword,
		arg.Status,
		arg.Sign,
		arg.ExcludeID,
	)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createSystemDict = `-- name: CreateSystemDict :one
INSERT INTO system_dicts (name, sign, remark, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, name, sign, remark, status, created_at, updated_at, deleted_at
`

type CreateSystemDictParams struct {
	Name      string             `json:"name"`
	Sign      string             `json:"sign"`
	Remark    string             `json:"remark"`
	Status    int32              `json:"status"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateSystemDict(ctx context.Context, arg CreateSystemDictParams) (SystemDict, error) {
	row := q.db.QueryRow(ctx, createSystemDict,
		arg.Name,
		arg.Sign,
		arg.Remark,
		arg.Status,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i SystemDict
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Sign,
		&i.Remark,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const getSystemDictByID = `-- name: GetSystemDictByID :one
SELECT id, name, sign, remark, status, created_at, updated_at, deleted_at FROM system_dicts WHERE id = $1 AND deleted_at IS NULL
`

func (q *Queries) GetSystemDictByID(ctx context.Context, id int64) (SystemDict, error) {
	row := q.db.QueryRow(ctx, getSystemDictByID, id)
	var i SystemDict
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Sign,
		&i.Remark,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const getSystemDictBySign = `-- name: GetSystemDictBySign :one
SELECT id, name, sign, remark, status, created_at, updated_at, deleted_at FROM system_dicts WHERE sign = $1 AND deleted_at IS NULL
`

func (q *Queries) GetSystemDictBySign(ctx context.Context, sign string) (SystemDict, error) {
	row := q.db.QueryRow(ctx, getSystemDictBySign, sign)
	var i SystemDict
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Sign,
		&i.Remark,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const listSystemDicts = `-- name: ListSystemDicts :many
SELECT id, name, sign, remark, status, created_at, updated_at, deleted_at FROM system_dicts
WHERE deleted_at IS NULL
  AND ($1::text IS NULL OR name ILIKE '%' || $1::text || '%' OR sign ILIKE '%' || $1::text || '%')
  AND ($2::int IS NULL OR status = $2::int)
  AND ($3::text IS NULL OR sign = $3::text)
  AND ($4::bigint IS NULL OR id <> $4::bigint)
ORDER BY id DESC
LIMIT $5 OFFSET $6
`

type ListSystemDictsParams struct {
	Keyword   pgtype.Text `json:"keyword"`
	Status    pgtype.Int4 `json:"status"`
	Sign      pgtype.Text `json:"sign"`
	ExcludeID pgtype.Int8 `json:"exclude_id"`
	Limit     int32       `json:"limit"`
	Offset    int32       `json:"offset"`
}

func (q *Queries) ListSystemDicts(ctx context.Context, arg ListSystemDictsParams) ([]SystemDict, error) {
	rows, err := q.db.Query(ctx, listSystemDicts,
		arg.Keyword,
		arg.Status,
		arg.Sign,
		arg.ExcludeID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []SystemDict{}
	for rows.Next() {
		var i SystemDict
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Sign,
			&i.Remark,
			&i.Status,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.DeletedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const softDeleteSystemDict = `-- name: SoftDeleteSystemDict :execrows
UPDATE system_dicts SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL
`

type SoftDeleteSystemDictParams struct {
	ID        int64              `json:"id"`
	DeletedAt pgtype.Timestamptz `json:"deleted_at"`
}

func (q *Queries) SoftDeleteSystemDict(ctx context.Context, arg SoftDeleteSystemDictParams) (int64, error) {
	result, err := q.db.Exec(ctx, softDeleteSystemDict, arg.ID, arg.DeletedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateSystemDict = `-- name: UpdateSystemDict :one
UPDATE system_dicts SET name = $2, sign = $3, remark = $4, status = $5, updated_at = $6
WHERE id = $1 AND deleted_at IS NULL
RETURNING id, name, sign, remark, status, created_at, updated_at, deleted_at
`

type UpdateSystemDictParams struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Sign      string             `json:"sign"`
	Remark    string             `json:"remark"`
	Status    int32              `json:"status"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateSystemDict(ctx context.Context, arg UpdateSystemDictParams) (SystemDict, error) {
	row := q.db.QueryRow(ctx, updateSystemDict,
		arg.ID,
		arg.Name,
		arg.Sign,
		arg.Remark,
		arg.Status,
		arg.UpdatedAt,
	)
	var i SystemDict
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Sign,
		&i.Remark,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

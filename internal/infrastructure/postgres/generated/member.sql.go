package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countMembers = `-- name: CountMembers :one
SELECT COUNT(*) FROM members
WHERE deleted_at IS NULL
  AND ($1::text IS NULL OR nickname ILIKE '%' || $1::text || '%' OR email ILIKE '%' || $1::text || '%' OR mobile ILIKE '%' || $1::text || '%' OR unique_code ILIKE '%' || $1::text || '%')
  AND ($2::int IS NULL OR status = $2::int)
  AND ($3::int IS NULL OR sex = $3::int)
  AND ($4::boolean IS NULL OR is_promoter = $4::boolean)
  AND ($5::text IS NULL OR unique_code = $5::text)
  AND ($6::text IS NULL OR email = $6::text)
  AND ($7::bigint IS NULL OR id <> $7::bigint)
`

type CountMembersParams struct {
	Keyword    pgtype.Text `json:"keyword"`
	Status     pgtype.Int4 `json:"status"`
	Sex        pgtype.Int4 `json:"sex"`
	IsPromoter pgtype.Bool `json:"is_promoter"`
	UniqueCode pgtype.Text `json:"unique_code"`
	Email      pgtype.Text `json:"email"`
	ExcludeID  pgtype.Int8 `json:"exclude_id"`
}

func (q *Queries) CountMembers(ctx context.Context, arg CountMembersParams) (int64, error) {
	row := q.db.QueryRow(ctx, countMembers,
		arg.Keyword,
		arg.Status,
		arg.Sex,
		arg.IsPromoter,
		arg.UniqueCode,
		arg.Email,
		arg.ExcludeID,
	)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createMember = `-- name: CreateMember :one
INSERT INTO members (unique_code, email, mobile, nickname, avatar, password_hash, sex, balance, integral, remark, status, is_promoter, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id, unique_code, email, mobile, nickname, avatar, password_hash, sex, balance, integral, remark, status, is_promoter, last_login_ip, last_login_time, created_at, updated_at, deleted_at
`

type CreateMemberParams struct {
	UniqueCode   string             `json:"unique_code"`
	Email        string             `json:"email"`
	Mobile       string             `json:"mobile"`
	Nickname     string             `json:"nickname"`
	Avatar       string             `json:"avatar"`
	PasswordHash string             `json:"password_hash"`
	Sex          int32              `json:"sex"`
	Balance      pgtype.Numeric     `json:"balance"`
	Integral     int64              `json:"integral"`
	Remark       string             `json:"remark"`
	Status       int32              `json:"status"`
	IsPromoter   bool               `json:"is_promoter"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateMember(ctx context.Context, arg CreateMemberParams) (Member, error) {
	row := q.db.QueryRow(ctx, createMember,
		arg.UniqueCode,
		arg.Email,
		arg.Mobile,
		arg.Nickname,
		arg.Avatar,
		arg.PasswordHash,
		arg.Sex,
		arg.Balance,
		arg.Integral,
		arg.Remark,
		arg.Status,
		arg.IsPromoter,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Member
	err := row.Scan(
		&i.ID,
		&i.UniqueCode,
		&i.Email,
		&i.Mobile,
		&i.Nickname,
		&i.Avatar,
		&i.PasswordHash,
		&i.Sex,
		&i.Balance,
		&i.Integral,
		&i.Remark,
		&i.Status,
		&i.IsPromoter,
		&i.LastLoginIp,
		&i.LastLoginTime,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const getMemberByID = `-- name: GetMemberByID :one
SELECT id, unique_code, email, mobile, nickname, avatar, password_hash, sex, balance, integral, remark, status, is_promoter, last_login_ip, last_login_time, created_at, updated_at, deleted_at FROM members WHERE id = $1 AND deleted_at IS NULL
`

func (q *Queries) GetMemberByID(ctx context.Context, id int64) (Member, error) {
	row := q.db.QueryRow(ctx, getMemberByID, id)
	var i Member
	err := row.Scan(
		&i.ID,
		&i.UniqueCode,
		&i.Email,
		&i.Mobile,
		&i.Nickname,
		&i.Avatar,
		&i.PasswordHash,
		&i.Sex,
		&i.Balance,
		&i.Integral,
		&i.Remark,
		&i.Status,
		&i.IsPromoter,
		&i.LastLoginIp,
		&i.LastLoginTime,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const getMemberByIDForUpdate = `-- name: GetMemberByIDForUpdate :one
SELECT id, unique_code, email, mobile, nickname, avatar, password_hash, sex, balance, integral, remark, status, is_promoter, last_login_ip, last_login_time, created_at, updated_at, deleted_at FROM members WHERE id = $1 AND deleted_at IS NULL FOR UPDATE
`

func (q *Queries) GetMemberByIDForUpdate(ctx context.Context, id int64) (Member, error) {
	row := q.db.QueryRow(ctx, getMemberByIDForUpdate, id)
	var i Member
	err := row.Scan(
		&i.ID,
		&i.UniqueCode,
		&i.Email,
		&i.Mobile,
		&i.Nickname,
		&i.Avatar,
		&i.PasswordHash,
		&i.Sex,
		&i.Balance,
		&i.Integral,
		&i.Remark,
		&i.Status,
		&i.IsPromoter,
		&i.LastLoginIp,
		&i.LastLoginTime,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const listMembers = `-- name: ListMembers :many
SELECT id, unique_code, email, mobile, nickname, avatar, password_hash, sex, balance, integral, remark, status, is_promoter, last_login_ip, last_login_time, created_at, updated_at, deleted_at FROM members
WHERE deleted_at IS NULL
  AND ($1::text IS NULL OR nickname ILIKE '%' || $1::text || '%' OR email ILIKE '%' || $1::text || '%' OR mobile ILIKE '%' || $1::text || '%' OR unique_code ILIKE '%' || $1::text || '%')
  AND ($2::int IS NULL OR status = $2::int)
  AND ($3::int IS NULL OR sex = $3::int)
  AND ($4::boolean IS NULL OR is_promoter = $4::boolean)
  AND ($5::text IS NULL OR unique_code = $5::text)
  AND ($6::text IS NULL OR email = $6::text)
  AND ($7::bigint IS NULL OR id <> $7::bigint)
ORDER BY id DESC
LIMIT $8 OFFSET $9
`

type ListMembersParams struct {
	Keyword    pgtype.Text `json:"keyword"`
	Status     pgtype.Int4 `json:"status"`
	Sex        pgtype.Int4 `json:"sex"`
	IsPromoter pgtype.Bool `json:"is_promoter"`
	UniqueCode pgtype.Text `json:"unique_code"`
	Email      pgtype.Text `json:"email"`
	ExcludeID  pgtype.Int8 `json:"exclude_id"`
	Limit      int32       `json:"limit"`
	Offset     int32       `json:"offset"`
}

func (q *Queries) ListMembers(ctx context.Context, arg ListMembersParams) ([]Member, error) {
	rows, err := q.db.Query(ctx, listMembers,
		arg.Keyword,
		arg.Status,
		arg.Sex,
		arg.IsPromoter,
		arg.UniqueCode,
		arg.Email,
		arg.ExcludeID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Member{}
	for rows.Next() {
		var i Member
		if err := rows.Scan(
			&i.ID,
			&i.UniqueCode,
			&i.Email,
			&i.Mobile,
			&i.Nickname,
			&i.Avatar,
			&i.PasswordHash,
			&i.Sex,
			&i.Balance,
			&i.Integral,
			&i.Remark,
			&i.Status,
			&i.IsPromoter,
			&i.LastLoginIp,
			&i.LastLoginTime,
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

const setMemberLastLogin = `-- name: SetMemberLastLogin :one
UPDATE members SET last_login_ip = $2, last_login_time = $3
WHERE id = $1 AND deleted_at IS NULL
RETURNING id, unique_code, email, mobile, nickname, avatar, password_hash, sex, balance, integral, remark, status, is_promoter, last_login_ip, last_login_time, created_at, updated_at, deleted_at
`

type SetMemberLastLoginParams struct {
	ID            int64              `json:"id"`
	LastLoginIp   string             `json:"last_login_ip"`
	LastLoginTime pgtype.Timestamptz `json:"last_login_time"`
}

func (q *Queries) SetMemberLastLogin(ctx context.Context, arg SetMemberLastLoginParams) (Member, error) {
	row := q.db.QueryRow(ctx, setMemberLastLogin, arg.ID, arg.LastLoginIp, arg.LastLoginTime)
	var i Member
	err := row.Scan(
		&i.ID,
		&i.UniqueCode,
		&i.Email,
		&i.Mobile,
		&i.Nickname,
		&i.Avatar,
		&i.PasswordHash,
		&i.Sex,
		&i.Balance,
		&i.Integral,
		&i.Remark,
		&i.Status,
		&i.IsPromoter,
		&i.LastLoginIp,
		&i.LastLoginTime,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const softDeleteMember = `-- name: SoftDeleteMember :execrows
UPDATE members SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL
`

type SoftDeleteMemberParams struct {
	ID        int64              `json:"id"`
	DeletedAt pgtype.Timestamptz `json:"deleted_at"`
}

func (q *Queries) SoftDeleteMember(ctx context.Context, arg SoftDeleteMemberParams) (int64, error) {
	result, err := q.db.Exec(ctx, softDeleteMember, arg.ID, arg.DeletedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateMemberBalanceAndIntegral = `-- name: UpdateMemberBalanceAndIntegral :one
UPDATE members SET balance = $2, integral = $3, updated_at = $4
WHERE id = $1 AND deleted_at IS NULL
RETURNING id, unique_code, email, mobile, nickname, avatar, password_hash, sex, balance, integral, remark, status, is_promoter, last_login_ip, last_login_time, created_at, updated_at, deleted_at
`

type UpdateMemberBalanceAndIntegralParams struct {
	ID        int64              `json:"id"`
	Balance   pgtype.Numeric     `json:"balance"`
	Integral  int64              `json:"integral"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateMemberBalanceAndIntegral(ctx context.Context, arg UpdateMemberBalanceAndIntegralParams) (Member, error) {
	row := q.db.QueryRow(ctx, updateMemberBalanceAndIntegral,
		arg.ID,
		arg.Balance,
		arg.Integral,
		arg.UpdatedAt,
	)
	var i Member
	err := row.Scan(
		&i.ID,
		&i.UniqueCode,
		&i.Email,
		&i.Mobile,
		&i.Nickname,
		&i.Avatar,
		&i.PasswordHash,
		&i.Sex,
		&i.Balance,
		&i.Integral,
		&i.Remark,
		&i.Status,
		&i.IsPromoter,
		&i.LastLoginIp,
		&i.LastLoginTime,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const updateMemberProfile = `-- name: UpdateMemberProfile :one
UPDATE members SET email = $2, mobile = $3, nickname = $4, avatar = $5, password_hash = $6, sex = $7, remark = $8, status = $9, is_promoter = $10, updated_at = $11
WHERE id = $1 AND deleted_at IS NULL
RETURNING id, unique_code, email, mobile, nickname, avatar, password_hash, sex, balance, integral, remark, status, is_promoter, last_login_ip, last_login_time, created_at, updated_at, deleted_at
`

type UpdateMemberProfileParams struct {
	ID           int64              `json:"id"`
	Email        string             `json:"email"`
	Mobile       string             `json:"mobile"`
	Nickname     string             `json:"nickname"`
	Avatar       string             `json:"avatar"`
	PasswordHash string             `json:"password_hash"`
	Sex          int32              `json:"sex"`
	Remark       string             `json:"remark"`
	Status       int32              `json:"status"`
	IsPromoter   bool               `json:"is_promoter"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateMemberProfile(ctx context.Context, arg UpdateMemberProfileParams) (Member, error) {
	row := q.db.QueryRow(ctx, updateMemberProfile,
		arg.ID,
		arg.Email,
		arg.Mobile,
		arg.Nickname,
		arg.Avatar,
		arg.PasswordHash,
		arg.Sex,
		arg.Remark,
		arg.Status,
		arg.IsPromoter,
		arg.UpdatedAt,
	)
	var i Member
	err := row.Scan(
		&i.ID,
		&i.UniqueCode,
		&i.Email,
		&i.Mobile,
		&i.Nickname,
		&i.Avatar,
		&i.PasswordHash,
		&i.Sex,
		&i.Balance,
		&i.Integral,
		&i.Remark,
		&i.Status,
		&i.IsPromoter,
		&i.LastLoginIp,
		&i.LastLoginTime,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countMemberBills = `-- name: CountMemberBills :one
SELECT COUNT(*) FROM member_bills
WHERE member_id = $1
  AND ($2::text IS NULL OR kind = $2::text)
  AND ($3::text IS NULL OR direction = $3::text)
`

type CountMemberBillsParams struct {
	MemberID  int64       `json:"member_id"`
	Kind      pgtype.Text `json:"kind"`
	Direction pgtype.Text `json:"direction"`
}

func (q *Queries) CountMemberBills(ctx context.Context, arg CountMemberBillsParams) (int64, error) {
	row := q.db.QueryRow(ctx, countMemberBills, arg.MemberID, arg.Kind, arg.Direction)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createMemberBill = `-- name: CreateMemberBill :exec
INSERT INTO member_bills (id, member_id, kind, direction, amount, previous_value, current_value, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateMemberBillParams struct {
	ID            string             `json:"id"`
	MemberID      int64              `json:"member_id"`
	Kind          string             `json:"kind"`
	Direction     string             `json:"direction"`
	Amount        pgtype.Numeric     `json:"amount"`
	PreviousValue pgtype.Numeric     `json:"previous_value"`
	CurrentValue  pgtype.Numeric     `json:"current_value"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateMemberBill(ctx context.Context, arg CreateMemberBillParams) error {
	_, err := q.db.Exec(ctx, createMemberBill,
		arg.ID,
		arg.MemberID,
		arg.Kind,
		arg.Direction,
		arg.Amount,
		arg.PreviousValue,
		arg.CurrentValue,
		arg.CreatedAt,
	)
	return err
}

const listMemberBills = `-- name: ListMemberBills :many
SELECT id, member_id, kind, direction, amount, previous_value, current_value, created_at FROM member_bills
WHERE member_id = $1
  AND ($2::text IS NULL OR kind = $2::text)
  AND ($3::text IS NULL OR direction = $3::text)
ORDER BY created_at DESC, id DESC
LIMIT $4 OFFSET $5
`

type ListMemberBillsParams struct {
	MemberID  int64       `json:"member_id"`
	Kind      pgtype.Text `json:"kind"`
	Direction pgtype.Text `json:"direction"`
	Limit     int32       `json:"limit"`
	Offset    int32       `json:"offset"`
}

func (q *Queries) ListMemberBills(ctx context.Context, arg ListMemberBillsParams) ([]MemberBill, error) {
	rows, err := q.db.Query(ctx, listMemberBills,
		arg.MemberID,
		arg.Kind,
		arg.Direction,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []MemberBill{}
	for rows.Next() {
		var i MemberBill
		if err := rows.Scan(
			&i.ID,
			&i.MemberID,
			&i.Kind,
			&i.Direction,
			&i.Amount,
			&i.PreviousValue,
			&i.CurrentValue,
			&i.CreatedAt,
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

const sumMemberBills = `-- name: SumMemberBills :one
SELECT
    COALESCE(SUM(CASE WHEN direction = 'increment' THEN amount ELSE -amount END) FILTER (WHERE kind = 'balance'), 0)::numeric AS balance_total,
    COALESCE(SUM(CASE WHEN direction = 'increment' THEN amount ELSE -amount END) FILTER (WHERE kind = 'integral'), 0)::bigint AS integral_total,
    COUNT(*) AS bill_count
FROM member_bills
WHERE member_id = $1
`

type SumMemberBillsRow struct {
	BalanceTotal  pgtype.Numeric `json:"balance_total"`
	IntegralTotal int64          `json:"integral_total"`
	BillCount     int64          `json:"bill_count"`
}

func (q *Queries) SumMemberBills(ctx context.Context, memberID int64) (SumMemberBillsRow, error) {
	row := q.db.QueryRow(ctx, sumMemberBills, memberID)
	var i SumMemberBillsRow
	err := row.Scan(&i.BalanceTotal, &i.IntegralTotal, &i.BillCount)
	return i, err
}

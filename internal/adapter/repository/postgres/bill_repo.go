package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/infrastructure/postgres/generated"
	"github.com/iho/memberledger/internal/usecase"
)

// BillRepository implements usecase.BillWriter and usecase.BillReader.
// There is no update or delete path; the table also rejects both with a trigger.
type BillRepository struct {
	queries *generated.Queries
}

// NewBillRepository creates a new BillRepository.
func NewBillRepository(db generated.DBTX) *BillRepository {
	return &BillRepository{
		queries: generated.New(db),
	}
}

// Append inserts a bill inside tx.
func (r *BillRepository) Append(ctx context.Context, tx usecase.Transaction, bill *domain.Bill) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	return queries.CreateMemberBill(ctx, generated.CreateMemberBillParams{
		ID:            bill.ID,
		MemberID:      bill.MemberID,
		Kind:          string(bill.Kind),
		Direction:     string(bill.Direction),
		Amount:        decimalToNumeric(bill.Amount),
		PreviousValue: decimalToNumeric(bill.PreviousValue),
		CurrentValue:  decimalToNumeric(bill.CurrentValue),
		CreatedAt:     timeToPgTimestamptz(bill.CreatedAt),
	})
}

// ListByMember lists a member's bills, newest first.
func (r *BillRepository) ListByMember(ctx context.Context, memberID int64, filter domain.BillFilter) ([]*domain.Bill, error) {
	kind, direction := billFilterArgs(filter)
	rows, err := r.queries.ListMemberBills(ctx, generated.ListMemberBillsParams{
		MemberID:  memberID,
		Kind:      kind,
		Direction: direction,
		Limit:     int32(filter.Limit),
		Offset:    int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	bills := make([]*domain.Bill, 0, len(rows))
	for _, row := range rows {
		bills = append(bills, rowToBill(row))
	}

	return bills, nil
}

// CountByMember counts a member's bills matching the kind and direction of
// filter. Limit and offset are ignored.
func (r *BillRepository) CountByMember(ctx context.Context, memberID int64, filter domain.BillFilter) (int64, error) {
	kind, direction := billFilterArgs(filter)
	return r.queries.CountMemberBills(ctx, generated.CountMemberBillsParams{
		MemberID:  memberID,
		Kind:      kind,
		Direction: direction,
	})
}

// Sum totals a member's signed bill amounts per kind inside tx.
func (r *BillRepository) Sum(ctx context.Context, tx usecase.Transaction, memberID int64) (*domain.BillSummary, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	row, err := queries.SumMemberBills(ctx, memberID)
	if err != nil {
		return nil, err
	}

	return &domain.BillSummary{
		BalanceTotal:  numericToDecimal(row.BalanceTotal),
		IntegralTotal: row.IntegralTotal,
		Count:         row.BillCount,
	}, nil
}

func billFilterArgs(filter domain.BillFilter) (kind, direction pgtype.Text) {
	if filter.Kind != nil {
		k := string(*filter.Kind)
		kind = textArg(&k)
	}
	if filter.Direction != nil {
		d := string(*filter.Direction)
		direction = textArg(&d)
	}
	return kind, direction
}

func rowToBill(row generated.MemberBill) *domain.Bill {
	return &domain.Bill{
		ID:            row.ID,
		MemberID:      row.MemberID,
		Kind:          domain.BillKind(row.Kind),
		Direction:     domain.Direction(row.Direction),
		Amount:        numericToDecimal(row.Amount),
		PreviousValue: numericToDecimal(row.PreviousValue),
		CurrentValue:  numericToDecimal(row.CurrentValue),
		CreatedAt:     row.CreatedAt.Time,
	}
}

package usecase

import (
	"context"

	"github.com/iho/memberledger/internal/domain"
)

// BillUseCase reports on the bill ledger. It never writes.
type BillUseCase struct {
	txManager  TransactionManager
	memberRepo MemberRepository
	billReader BillReader
}

// NewBillUseCase creates a new BillUseCase.
func NewBillUseCase(txManager TransactionManager, memberRepo MemberRepository, billReader BillReader) *BillUseCase {
	return &BillUseCase{
		txManager:  txManager,
		memberRepo: memberRepo,
		billReader: billReader,
	}
}

// ListByMember returns one page of a member's bills, newest first, and the
// number of the member's bills matching filter.
func (uc *BillUseCase) ListByMember(ctx context.Context, memberID int64, filter domain.BillFilter) ([]*domain.Bill, int64, error) {
	if _, err := uc.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, 0, err
	}

	if filter.Kind != nil && !filter.Kind.IsValid() {
		return nil, 0, domain.ErrInvalidBillKind
	}
	if filter.Direction != nil && !filter.Direction.IsValid() {
		return nil, 0, domain.ErrInvalidDirection
	}

	filter.Limit, filter.Offset = domain.NormalizePagination(filter.Limit, filter.Offset)

	bills, err := uc.billReader.ListByMember(ctx, memberID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.billReader.CountByMember(ctx, memberID, filter)
	if err != nil {
		return nil, 0, err
	}

	return bills, total, nil
}

// Reconcile recomputes a member's balance and integral from its bills and
// compares them with the stored values. Both are read under the member's row
// lock so a concurrent mutation cannot land between the two reads.
func (uc *BillUseCase) Reconcile(ctx context.Context, memberID int64) (*domain.Reconciliation, error) {
	var (
		member *domain.Member
		sum    *domain.BillSummary
	)
	err := runInTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		member, err = uc.memberRepo.GetByIDForUpdate(ctx, tx, memberID)
		if err != nil {
			return err
		}
		sum, err = uc.billReader.Sum(ctx, tx, memberID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &domain.Reconciliation{
		MemberID:        member.ID,
		Balance:         member.Balance,
		Integral:        member.Integral,
		BillBalance:     sum.BalanceTotal,
		BillIntegral:    sum.IntegralTotal,
		BillCount:       sum.Count,
		BalanceMatches:  member.Balance.Equal(sum.BalanceTotal),
		IntegralMatches: member.Integral == sum.IntegralTotal,
	}, nil
}

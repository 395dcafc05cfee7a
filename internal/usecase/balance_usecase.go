package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/memberledger/internal/domain"
)

// errMemberAbsent aborts the unit of work when the member does not exist.
var errMemberAbsent = errors.New("member absent")

// MutationInput names a member and the magnitudes to apply to it.
// A nil field leaves that value untouched and writes no bill for it.
type MutationInput struct {
	MemberID int64
	Balance  *decimal.Decimal
	Integral *int64
}

// BalanceUseCase changes member balances and integrals, writing one bill per change
// in the same transaction as the member update.
type BalanceUseCase struct {
	txManager  TransactionManager
	memberRepo MemberRepository
	billWriter BillWriter
	idGen      IDGenerator
	retrier    Retrier
	policy     domain.BalancePolicy
	metrics    MutationRecorder
	now        func() time.Time
}

// NewBalanceUseCase creates a new BalanceUseCase. retrier and metrics may be nil.
func NewBalanceUseCase(
	txManager TransactionManager,
	memberRepo MemberRepository,
	billWriter BillWriter,
	idGen IDGenerator,
	retrier Retrier,
	policy domain.BalancePolicy,
	metrics MutationRecorder,
) *BalanceUseCase {
	if retrier == nil {
		retrier = onceRetrier{}
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}

	return &BalanceUseCase{
		txManager:  txManager,
		memberRepo: memberRepo,
		billWriter: billWriter,
		idGen:      idGen,
		retrier:    retrier,
		policy:     policy,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Increment adds the given magnitudes to the member.
func (uc *BalanceUseCase) Increment(ctx context.Context, input MutationInput) (*domain.Member, error) {
	return uc.ApplyDelta(ctx, input, domain.DirectionIncrement)
}

// Decrement subtracts the given magnitudes from the member.
func (uc *BalanceUseCase) Decrement(ctx context.Context, input MutationInput) (*domain.Member, error) {
	return uc.ApplyDelta(ctx, input, domain.DirectionDecrement)
}

// ApplyDelta applies input in direction as one atomic unit of work.
//
// It returns (nil, nil) when the member does not exist. On any error no bill of
// the call is persisted and the member is unchanged.
func (uc *BalanceUseCase) ApplyDelta(ctx context.Context, input MutationInput, direction domain.Direction) (*domain.Member, error) {
	start := uc.now()

	if err := validateMutation(input, direction); err != nil {
		uc.metrics.ObserveMutation(direction, OutcomeInvalid, uc.now().Sub(start))
		return nil, err
	}

	var (
		result *domain.Member
		bills  []*domain.Bill
	)

	err := uc.retrier.Retry(ctx, func() error {
		result, bills = nil, nil
		return runInTx(ctx, uc.txManager, func(tx Transaction) error {
			var err error
			result, bills, err = uc.apply(ctx, tx, input, direction)
			return err
		})
	})

	if errors.Is(err, errMemberAbsent) {
		result, err = nil, nil
	}

	uc.metrics.ObserveMutation(direction, mutationOutcome(ctx, result, err), uc.now().Sub(start))

	log := zerolog.Ctx(ctx)
	if err != nil {
		log.Warn().Err(err).
			Int64("member_id", input.MemberID).
			Str("direction", string(direction)).
			Msg("member mutation failed")
		return nil, err
	}

	if result == nil {
		log.Info().Int64("member_id", input.MemberID).Msg("member mutation skipped, member not found")
		return nil, nil
	}

	for _, b := range bills {
		uc.metrics.BillAppended(b.Kind, b.Direction)
	}

	log.Info().
		Int64("member_id", result.ID).
		Str("direction", string(direction)).
		Int("bills", len(bills)).
		Str("balance", result.Balance.StringFixed(domain.BalanceScale)).
		Int64("integral", result.Integral).
		Msg("member mutation applied")

	return result, nil
}

func (uc *BalanceUseCase) apply(
	ctx context.Context,
	tx Transaction,
	input MutationInput,
	direction domain.Direction,
) (*domain.Member, []*domain.Bill, error) {
	member, err := uc.memberRepo.GetByIDForUpdate(ctx, tx, input.MemberID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, nil, errMemberAbsent
		}
		return nil, nil, domain.NewStorageError("lock member", err)
	}

	if input.Balance == nil && input.Integral == nil {
		return member, nil, nil
	}

	now := uc.now().UTC()
	balance := member.Balance
	integral := member.Integral
	bills := make([]*domain.Bill, 0, 2)

	if input.Balance != nil {
		next := direction.ApplyDecimal(balance, *input.Balance)
		bills = append(bills, &domain.Bill{
			ID:            uc.idGen.Generate(),
			MemberID:      member.ID,
			Kind:          domain.BillKindBalance,
			Direction:     direction,
			Amount:        *input.Balance,
			PreviousValue: balance,
			CurrentValue:  next,
			CreatedAt:     now,
		})
		balance = next
	}

	if input.Integral != nil {
		next := direction.ApplyInt(integral, *input.Integral)
		bills = append(bills, &domain.Bill{
			ID:            uc.idGen.Generate(),
			MemberID:      member.ID,
			Kind:          domain.BillKindIntegral,
			Direction:     direction,
			Amount:        decimal.NewFromInt(*input.Integral),
			PreviousValue: decimal.NewFromInt(integral),
			CurrentValue:  decimal.NewFromInt(next),
			CreatedAt:     now,
		})
		integral = next
	}

	if err := uc.policy.Check(balance, integral); err != nil {
		return nil, nil, err
	}

	for _, b := range bills {
		if err := uc.billWriter.Append(ctx, tx, b); err != nil {
			return nil, nil, domain.NewStorageError(fmt.Sprintf("append %s bill", b.Kind), err)
		}
	}

	updated, err := uc.memberRepo.UpdateBalanceAndIntegral(ctx, tx, member.ID, balance, integral, now)
	if err != nil {
		return nil, nil, domain.NewStorageError("update member", err)
	}

	return updated, bills, nil
}

func validateMutation(input MutationInput, direction domain.Direction) error {
	if !direction.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDirection, direction)
	}
	if input.Balance != nil {
		if err := domain.ValidateBalanceAmount(*input.Balance); err != nil {
			return err
		}
	}
	if input.Integral != nil {
		if err := domain.ValidateIntegralAmount(*input.Integral); err != nil {
			return err
		}
	}
	return nil
}

func mutationOutcome(ctx context.Context, result *domain.Member, err error) string {
	switch {
	case err == nil && result == nil:
		return OutcomeNotFound
	case err == nil:
		return OutcomeApplied
	case errors.Is(err, domain.ErrConstraintViolation):
		return OutcomeRejected
	case ctx.Err() != nil:
		return OutcomeCancelled
	default:
		return OutcomeStorage
	}
}

// onceRetrier runs the operation a single time.
type onceRetrier struct{}

func (onceRetrier) Retry(_ context.Context, operation func() error) error {
	return operation()
}

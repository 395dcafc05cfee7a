package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/infrastructure/postgres/generated"
	"github.com/iho/memberledger/internal/usecase"
)

// MemberRepository implements usecase.MemberRepository.
type MemberRepository struct {
	queries *generated.Queries
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(db generated.DBTX) *MemberRepository {
	return &MemberRepository{
		queries: generated.New(db),
	}
}

// Create inserts a member and returns it with its assigned id.
func (r *MemberRepository) Create(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	row, err := r.queries.CreateMember(ctx, generated.CreateMemberParams{
		UniqueCode:   member.UniqueCode,
		Email:        member.Email,
		Mobile:       member.Mobile,
		Nickname:     member.Nickname,
		Avatar:       member.Avatar,
		PasswordHash: member.PasswordHash,
		Sex:          member.Sex,
		Balance:      decimalToNumeric(member.Balance),
		Integral:     member.Integral,
		Remark:       member.Remark,
		Status:       int32(member.Status),
		IsPromoter:   member.IsPromoter,
		CreatedAt:    timeToPgTimestamptz(member.CreatedAt),
		UpdatedAt:    timeToPgTimestamptz(member.UpdatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrMemberAlreadyExists
		}
		return nil, err
	}

	return rowToMember(row), nil
}

// GetByID retrieves a live member by ID.
func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	row, err := r.queries.GetMemberByID(ctx, id)
	if err != nil {
		return nil, memberErr(err)
	}

	return rowToMember(row), nil
}

// GetByIDForUpdate retrieves a live member by ID with a FOR UPDATE lock.
func (r *MemberRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Member, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	row, err := queries.GetMemberByIDForUpdate(ctx, id)
	if err != nil {
		return nil, memberErr(err)
	}

	return rowToMember(row), nil
}

// UpdateBalanceAndIntegral overwrites both values of a member inside tx.
func (r *MemberRepository) UpdateBalanceAndIntegral(
	ctx context.Context,
	tx usecase.Transaction,
	id int64,
	balance decimal.Decimal,
	integral int64,
	updatedAt time.Time,
) (*domain.Member, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	row, err := queries.UpdateMemberBalanceAndIntegral(ctx, generated.UpdateMemberBalanceAndIntegralParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		Integral:  integral,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return nil, memberErr(err)
	}

	return rowToMember(row), nil
}

// UpdateProfile writes the profile fields of a member. Balance and integral are not touched.
func (r *MemberRepository) UpdateProfile(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	row, err := r.queries.UpdateMemberProfile(ctx, generated.UpdateMemberProfileParams{
		ID:           member.ID,
		Email:        member.Email,
		Mobile:       member.Mobile,
		Nickname:     member.Nickname,
		Avatar:       member.Avatar,
		PasswordHash: member.PasswordHash,
		Sex:          member.Sex,
		Remark:       member.Remark,
		Status:       int32(member.Status),
		IsPromoter:   member.IsPromoter,
		UpdatedAt:    timeToPgTimestamptz(member.UpdatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrMemberAlreadyExists
		}
		return nil, memberErr(err)
	}

	return rowToMember(row), nil
}

// SetLastLogin records the address and time of a member's latest login.
func (r *MemberRepository) SetLastLogin(ctx context.Context, id int64, ip string, at time.Time) (*domain.Member, error) {
	row, err := r.queries.SetMemberLastLogin(ctx, generated.SetMemberLastLoginParams{
		ID:            id,
		LastLoginIp:   ip,
		LastLoginTime: timeToPgTimestamptz(at),
	})
	if err != nil {
		return nil, memberErr(err)
	}

	return rowToMember(row), nil
}

// SoftDelete marks a member deleted.
func (r *MemberRepository) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	n, err := r.queries.SoftDeleteMember(ctx, generated.SoftDeleteMemberParams{
		ID:        id,
		DeletedAt: timeToPgTimestamptz(deletedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrMemberNotFound
	}

	return nil
}

// List lists live members matching filter, newest first.
func (r *MemberRepository) List(ctx context.Context, filter domain.MemberFilter) ([]*domain.Member, error) {
	rows, err := r.queries.ListMembers(ctx, generated.ListMembersParams{
		Keyword:    likeArg(filter.Keyword),
		Status:     int4Arg(filter.Status),
		Sex:        int4Arg(filter.Sex),
		IsPromoter: boolArg(filter.IsPromoter),
		UniqueCode: textArg(filter.UniqueCode),
		Email:      textArg(filter.Email),
		ExcludeID:  int8Arg(filter.ExcludeID),
		Limit:      int32(filter.Limit),
		Offset:     int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	members := make([]*domain.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, rowToMember(row))
	}

	return members, nil
}

// Count counts live members matching filter. Limit and offset are ignored.
func (r *MemberRepository) Count(ctx context.Context, filter domain.MemberFilter) (int64, error) {
	return r.queries.CountMembers(ctx, generated.CountMembersParams{
		Keyword:    likeArg(filter.Keyword),
		Status:     int4Arg(filter.Status),
		Sex:        int4Arg(filter.Sex),
		IsPromoter: boolArg(filter.IsPromoter),
		UniqueCode: textArg(filter.UniqueCode),
		Email:      textArg(filter.Email),
		ExcludeID:  int8Arg(filter.ExcludeID),
	})
}

func memberErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrMemberNotFound
	}
	return err
}

func rowToMember(row generated.Member) *domain.Member {
	return &domain.Member{
		ID:            row.ID,
		UniqueCode:    row.UniqueCode,
		Email:         row.Email,
		Mobile:        row.Mobile,
		Nickname:      row.Nickname,
		Avatar:        row.Avatar,
		PasswordHash:  row.PasswordHash,
		Sex:           row.Sex,
		Balance:       numericToDecimal(row.Balance),
		Integral:      row.Integral,
		Remark:        row.Remark,
		Status:        domain.MemberStatus(row.Status),
		IsPromoter:    row.IsPromoter,
		LastLoginIP:   row.LastLoginIp,
		LastLoginTime: pgTimestamptzToPtr(row.LastLoginTime),
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
		DeletedAt:     pgTimestamptzToPtr(row.DeletedAt),
	}
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iho/memberledger/internal/domain"
)

// MemberUseCase handles member profile management. Balance and integral are
// never written here; see BalanceUseCase.
type MemberUseCase struct {
	memberRepo MemberRepository
	now        func() time.Time
}

// NewMemberUseCase creates a new MemberUseCase.
func NewMemberUseCase(memberRepo MemberRepository) *MemberUseCase {
	return &MemberUseCase{
		memberRepo: memberRepo,
		now:        time.Now,
	}
}

// CreateMemberInput represents input for creating a member.
type CreateMemberInput struct {
	UniqueCode string
	Email      string
	Mobile     string
	Nickname   string
	Avatar     string
	Password   string
	Sex        int32
	Remark     string
	Status     *domain.MemberStatus
	IsPromoter bool
}

// CreateMember creates a member with zero balance and zero integral.
func (uc *MemberUseCase) CreateMember(ctx context.Context, input CreateMemberInput) (*domain.Member, error) {
	if err := domain.ValidateNickname(input.Nickname); err != nil {
		return nil, err
	}
	if err := domain.ValidateSex(input.Sex); err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)
	if email != "" {
		if err := domain.ValidateEmail(email); err != nil {
			return nil, err
		}
	}

	status := domain.MemberStatusActive
	if input.Status != nil {
		if err := domain.ValidateMemberStatus(*input.Status); err != nil {
			return nil, err
		}
		status = *input.Status
	}

	code := strings.TrimSpace(input.UniqueCode)
	if code == "" {
		code = uuid.NewString()
	}

	if err := uc.ensureUnique(ctx, code, email, nil); err != nil {
		return nil, err
	}

	var passwordHash string
	if input.Password != "" {
		if err := domain.ValidatePassword(input.Password); err != nil {
			return nil, err
		}
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = hash
	}

	now := uc.now().UTC()
	member, err := uc.memberRepo.Create(ctx, &domain.Member{
		UniqueCode:   code,
		Email:        email,
		Mobile:       strings.TrimSpace(input.Mobile),
		Nickname:     strings.TrimSpace(input.Nickname),
		Avatar:       input.Avatar,
		PasswordHash: passwordHash,
		Sex:          input.Sex,
		Remark:       input.Remark,
		Status:       status,
		IsPromoter:   input.IsPromoter,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("member_id", member.ID).Str("unique_code", member.UniqueCode).Msg("member created")

	member.PasswordHash = ""
	return member, nil
}

// GetMember retrieves a live member.
func (uc *MemberUseCase) GetMember(ctx context.Context, id int64) (*domain.Member, error) {
	member, err := uc.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.PasswordHash = ""
	return member, nil
}

// ListMembers returns one page of members matching filter and the total match count.
func (uc *MemberUseCase) ListMembers(ctx context.Context, filter domain.MemberFilter) ([]*domain.Member, int64, error) {
	filter.Limit, filter.Offset = domain.NormalizePagination(filter.Limit, filter.Offset)
	if filter.Keyword != nil {
		kw := strings.TrimSpace(*filter.Keyword)
		if kw == "" {
			filter.Keyword = nil
		} else {
			filter.Keyword = &kw
		}
	}

	members, err := uc.memberRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.memberRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	for _, m := range members {
		m.PasswordHash = ""
	}

	return members, total, nil
}

// UpdateMemberInput carries the profile fields to change. Nil fields are kept.
type UpdateMemberInput struct {
	ID         int64
	Email      *string
	Mobile     *string
	Nickname   *string
	Avatar     *string
	Password   *string
	Sex        *int32
	Remark     *string
	Status     *domain.MemberStatus
	IsPromoter *bool
}

func (in UpdateMemberInput) empty() bool {
	return in.Email == nil && in.Mobile == nil && in.Nickname == nil && in.Avatar == nil &&
		in.Password == nil && in.Sex == nil && in.Remark == nil && in.Status == nil && in.IsPromoter == nil
}

// UpdateMember changes profile fields of a member.
func (uc *MemberUseCase) UpdateMember(ctx context.Context, input UpdateMemberInput) (*domain.Member, error) {
	if input.empty() {
		return nil, domain.ErrNothingToPersist
	}

	member, err := uc.memberRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Nickname != nil {
		if err := domain.ValidateNickname(*input.Nickname); err != nil {
			return nil, err
		}
		member.Nickname = strings.TrimSpace(*input.Nickname)
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != "" {
			if err := domain.ValidateEmail(email); err != nil {
				return nil, err
			}
			if err := uc.ensureUnique(ctx, "", email, &member.ID); err != nil {
				return nil, err
			}
		}
		member.Email = email
	}

	if input.Sex != nil {
		if err := domain.ValidateSex(*input.Sex); err != nil {
			return nil, err
		}
		member.Sex = *input.Sex
	}

	if input.Status != nil {
		if err := domain.ValidateMemberStatus(*input.Status); err != nil {
			return nil, err
		}
		member.Status = *input.Status
	}

	if input.Password != nil {
		if err := domain.ValidatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		member.PasswordHash = hash
	}

	if input.Mobile != nil {
		member.Mobile = strings.TrimSpace(*input.Mobile)
	}
	if input.Avatar != nil {
		member.Avatar = *input.Avatar
	}
	if input.Remark != nil {
		member.Remark = *input.Remark
	}
	if input.IsPromoter != nil {
		member.IsPromoter = *input.IsPromoter
	}

	member.UpdatedAt = uc.now().UTC()

	updated, err := uc.memberRepo.UpdateProfile(ctx, member)
	if err != nil {
		return nil, err
	}

	updated.PasswordHash = ""
	return updated, nil
}

// DeleteMember soft deletes a member. Its bills are kept.
func (uc *MemberUseCase) DeleteMember(ctx context.Context, id int64) error {
	if err := uc.memberRepo.SoftDelete(ctx, id, uc.now().UTC()); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Int64("member_id", id).Msg("member deleted")
	return nil
}

// RecordLogin stamps a member with the client address and time of its latest login.
func (uc *MemberUseCase) RecordLogin(ctx context.Context, id int64, ip string) (*domain.Member, error) {
	member, err := uc.memberRepo.SetLastLogin(ctx, id, strings.TrimSpace(ip), uc.now().UTC())
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int64("member_id", id).Str("ip", member.LastLoginIP).Msg("member login recorded")
	member.PasswordHash = ""
	return member, nil
}

// ensureUnique rejects a unique code or email already held by another live member.
func (uc *MemberUseCase) ensureUnique(ctx context.Context, code, email string, excludeID *int64) error {
	if code != "" {
		n, err := uc.memberRepo.Count(ctx, domain.MemberFilter{UniqueCode: &code, ExcludeID: excludeID})
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrMemberAlreadyExists
		}
	}

	if email != "" {
		n, err := uc.memberRepo.Count(ctx, domain.MemberFilter{Email: &email, ExcludeID: excludeID})
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrMemberAlreadyExists
		}
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

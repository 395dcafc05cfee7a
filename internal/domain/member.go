package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberStatus is the administrative state of a member account.
type MemberStatus int32

const (
	MemberStatusDisabled MemberStatus = 0
	MemberStatusActive   MemberStatus = 1
)

// Member is the aggregate holding a member's profile and its current balance and integral.
// Balance and Integral are only ever changed through the balance mutation path.
type Member struct {
	ID            int64
	UniqueCode    string
	Email         string
	Mobile        string
	Nickname      string
	Avatar        string
	PasswordHash  string
	Sex           int32
	Balance       decimal.Decimal
	Integral      int64
	Remark        string
	Status        MemberStatus
	IsPromoter    bool
	LastLoginIP   string
	LastLoginTime *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// IsDeleted reports whether the member was soft deleted.
func (m *Member) IsDeleted() bool {
	return m.DeletedAt != nil
}

// MemberFilter narrows member listings. Nil fields are not applied.
type MemberFilter struct {
	Keyword    *string
	Status     *MemberStatus
	Sex        *int32
	IsPromoter *bool
	UniqueCode *string
	Email      *string
	ExcludeID  *int64
	Limit      int
	Offset     int
}

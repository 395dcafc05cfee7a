package dto

import (
	"time"

	"github.com/iho/memberledger/internal/domain"
)

// MemberResponse represents a member in API responses. The password hash
// never leaves the service.
type MemberResponse struct {
	ID            int64               `json:"id"`
	UniqueCode    string              `json:"unique_code"`
	Email         string              `json:"email"`
	Mobile        string              `json:"mobile"`
	Nickname      string              `json:"nickname"`
	Avatar        string              `json:"avatar"`
	Sex           int32               `json:"sex"`
	Balance       string              `json:"balance"`
	Integral      int64               `json:"integral"`
	Remark        string              `json:"remark"`
	Status        domain.MemberStatus `json:"status"`
	IsPromoter    bool                `json:"is_promoter"`
	LastLoginIP   string              `json:"last_login_ip,omitempty"`
	LastLoginTime *time.Time          `json:"last_login_time,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// MemberFromDomain converts domain member to response.
func MemberFromDomain(m *domain.Member) *MemberResponse {
	return &MemberResponse{
		ID:            m.ID,
		UniqueCode:    m.UniqueCode,
		Email:         m.Email,
		Mobile:        m.Mobile,
		Nickname:      m.Nickname,
		Avatar:        m.Avatar,
		Sex:           m.Sex,
		Balance:       m.Balance.StringFixed(2),
		Integral:      m.Integral,
		Remark:        m.Remark,
		Status:        m.Status,
		IsPromoter:    m.IsPromoter,
		LastLoginIP:   m.LastLoginIP,
		LastLoginTime: m.LastLoginTime,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// MembersFromDomain converts domain members to responses.
func MembersFromDomain(members []*domain.Member) []*MemberResponse {
	result := make([]*MemberResponse, len(members))
	for i, m := range members {
		result[i] = MemberFromDomain(m)
	}
	return result
}

// ListMembersResponse is a page of members.
type ListMembersResponse struct {
	Members []*MemberResponse `json:"members"`
	Total   int64             `json:"total"`
}

// BillResponse represents a bill in API responses. Integral bills render
// without decimals.
type BillResponse struct {
	ID            string           `json:"id"`
	MemberID      int64            `json:"member_id"`
	Kind          domain.BillKind  `json:"kind"`
	Direction     domain.Direction `json:"direction"`
	Amount        string           `json:"amount"`
	PreviousValue string           `json:"previous_value"`
	CurrentValue  string           `json:"current_value"`
	CreatedAt     time.Time        `json:"created_at"`
}

// BillFromDomain converts domain bill to response.
func BillFromDomain(b *domain.Bill) *BillResponse {
	places := int32(2)
	if b.Kind == domain.BillKindIntegral {
		places = 0
	}
	return &BillResponse{
		ID:            b.ID,
		MemberID:      b.MemberID,
		Kind:          b.Kind,
		Direction:     b.Direction,
		Amount:        b.Amount.StringFixed(places),
		PreviousValue: b.PreviousValue.StringFixed(places),
		CurrentValue:  b.CurrentValue.StringFixed(places),
		CreatedAt:     b.CreatedAt,
	}
}

// BillsFromDomain converts domain bills to responses.
func BillsFromDomain(bills []*domain.Bill) []*BillResponse {
	result := make([]*BillResponse, len(bills))
	for i, b := range bills {
		result[i] = BillFromDomain(b)
	}
	return result
}

// ListBillsResponse is a page of bills.
type ListBillsResponse struct {
	Bills []*BillResponse `json:"bills"`
	Total int64           `json:"total"`
}

// ReconciliationResponse compares a member's stored values with its bills.
type ReconciliationResponse struct {
	MemberID        int64  `json:"member_id"`
	Balance         string `json:"balance"`
	Integral        int64  `json:"integral"`
	BillBalance     string `json:"bill_balance"`
	BillIntegral    int64  `json:"bill_integral"`
	BillCount       int64  `json:"bill_count"`
	BalanceMatches  bool   `json:"balance_matches"`
	IntegralMatches bool   `json:"integral_matches"`
	Consistent      bool   `json:"consistent"`
}

// ReconciliationFromDomain converts a reconciliation report to response.
func ReconciliationFromDomain(r *domain.Reconciliation) *ReconciliationResponse {
	return &ReconciliationResponse{
		MemberID:        r.MemberID,
		Balance:         r.Balance.StringFixed(2),
		Integral:        r.Integral,
		BillBalance:     r.BillBalance.StringFixed(2),
		BillIntegral:    r.BillIntegral,
		BillCount:       r.BillCount,
		BalanceMatches:  r.BalanceMatches,
		IntegralMatches: r.IntegralMatches,
		Consistent:      r.Consistent(),
	}
}

// DictResponse represents a dictionary entry in API responses.
type DictResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Sign      string            `json:"sign"`
	Remark    string            `json:"remark"`
	Status    domain.DictStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// DictFromDomain converts domain dictionary entry to response.
func DictFromDomain(d *domain.Dict) *DictResponse {
	return &DictResponse{
		ID:        d.ID,
		Name:      d.Name,
		Sign:      d.Sign,
		Remark:    d.Remark,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ListDictsResponse is a page of dictionary entries.
type ListDictsResponse struct {
	Dicts []*DictResponse `json:"dicts"`
	Total int64           `json:"total"`
}

// UserResponse represents an admin user in API responses.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name,omitempty"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at,omitempty"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

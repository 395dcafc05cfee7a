package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type AdminUser struct {
	ID             string             `json:"id"`
	Email          string             `json:"email"`
	Name           string             `json:"name"`
	HashedPassword string             `json:"hashed_password"`
	Role           string             `json:"role"`
	Active         bool               `json:"active"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type Member struct {
	ID            int64              `json:"id"`
	UniqueCode    string             `json:"unique_code"`
	Email         string             `json:"email"`
	Mobile        string             `json:"mobile"`
	Nickname      string             `json:"nickname"`
	Avatar        string             `json:"avatar"`
	PasswordHash  string             `json:"password_hash"`
	Sex           int32              `json:"sex"`
	Balance       pgtype.Numeric     `json:"balance"`
	Integral      int64              `json:"integral"`
	Remark        string             `json:"remark"`
	Status        int32              `json:"status"`
	IsPromoter    bool               `json:"is_promoter"`
	LastLoginIp   string             `json:"last_login_ip"`
	LastLoginTime pgtype.Timestamptz `json:"last_login_time"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
	DeletedAt     pgtype.Timestamptz `json:"deleted_at"`
}

type MemberBill struct {
	ID            string             `json:"id"`
	MemberID      int64              `json:"member_id"`
	Kind          string             `json:"kind"`
	Direction     string             `json:"direction"`
	Amount        pgtype.Numeric     `json:"amount"`
	PreviousValue pgtype.Numeric     `json:"previous_value"`
	CurrentValue  pgtype.Numeric     `json:"current_value"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type SystemDict struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Sign      string             `json:"sign"`
	Remark    string             `json:"remark"`
	Status    int32              `json:"status"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
	DeletedAt pgtype.Timestamptz `json:"deleted_at"`
}

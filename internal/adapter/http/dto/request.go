package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/usecase"
)

// MutationRequest is the body of an increment or decrement call.
// Both fields are optional; an empty body applies nothing. Balance accepts a
// JSON string or a bare number.
type MutationRequest struct {
	Balance  *decimal.Decimal `json:"balance,omitempty"`
	Integral *int64           `json:"integral,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *MutationRequest) ToUseCaseInput(memberID int64) usecase.MutationInput {
	return usecase.MutationInput{
		MemberID: memberID,
		Balance:  r.Balance,
		Integral: r.Integral,
	}
}

// CreateMemberRequest represents a request to create a member.
type CreateMemberRequest struct {
	UniqueCode string               `json:"unique_code"`
	Email      string               `json:"email"`
	Mobile     string               `json:"mobile"`
	Nickname   string               `json:"nickname"`
	Avatar     string               `json:"avatar"`
	Password   string               `json:"password"`
	Sex        int32                `json:"sex"`
	Remark     string               `json:"remark"`
	Status     *domain.MemberStatus `json:"status,omitempty"`
	IsPromoter bool                 `json:"is_promoter"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateMemberRequest) ToUseCaseInput() usecase.CreateMemberInput {
	return usecase.CreateMemberInput{
		UniqueCode: r.UniqueCode,
		Email:      r.Email,
		Mobile:     r.Mobile,
		Nickname:   r.Nickname,
		Avatar:     r.Avatar,
		Password:   r.Password,
		Sex:        r.Sex,
		Remark:     r.Remark,
		Status:     r.Status,
		IsPromoter: r.IsPromoter,
	}
}

// UpdateMemberRequest carries the profile fields to change. Balance and
// integral cannot be changed through this request.
type UpdateMemberRequest struct {
	Email      *string              `json:"email,omitempty"`
	Mobile     *string              `json:"mobile,omitempty"`
	Nickname   *string              `json:"nickname,omitempty"`
	Avatar     *string              `json:"avatar,omitempty"`
	Password   *string              `json:"password,omitempty"`
	Sex        *int32               `json:"sex,omitempty"`
	Remark     *string              `json:"remark,omitempty"`
	Status     *domain.MemberStatus `json:"status,omitempty"`
	IsPromoter *bool                `json:"is_promoter,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateMemberRequest) ToUseCaseInput(id int64) usecase.UpdateMemberInput {
	return usecase.UpdateMemberInput{
		ID:         id,
		Email:      r.Email,
		Mobile:     r.Mobile,
		Nickname:   r.Nickname,
		Avatar:     r.Avatar,
		Password:   r.Password,
		Sex:        r.Sex,
		Remark:     r.Remark,
		Status:     r.Status,
		IsPromoter: r.IsPromoter,
	}
}

// CreateDictRequest represents a request to create a dictionary entry.
type CreateDictRequest struct {
	Name   string             `json:"name"`
	Sign   string             `json:"sign"`
	Remark string             `json:"remark"`
	Status *domain.DictStatus `json:"status,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDictRequest) ToUseCaseInput() usecase.CreateDictInput {
	return usecase.CreateDictInput{
		Name:   r.Name,
		Sign:   r.Sign,
		Remark: r.Remark,
		Status: r.Status,
	}
}

// UpdateDictRequest carries the dictionary fields to change.
type UpdateDictRequest struct {
	Name   *string            `json:"name,omitempty"`
	Sign   *string            `json:"sign,omitempty"`
	Remark *string            `json:"remark,omitempty"`
	Status *domain.DictStatus `json:"status,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateDictRequest) ToUseCaseInput(id int64) usecase.UpdateDictInput {
	return usecase.UpdateDictInput{
		ID:     id,
		Name:   r.Name,
		Sign:   r.Sign,
		Remark: r.Remark,
		Status: r.Status,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest represents a request to create an admin user
type CreateUserRequest struct {
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
		Role:     r.Role,
	}
}

package domain

import "time"

// DictStatus is the enabled state of a dictionary entry.
type DictStatus int32

const (
	DictStatusDisabled DictStatus = 0
	DictStatusEnabled  DictStatus = 1
)

// Dict is a system lookup entry addressed by its unique sign.
type Dict struct {
	ID        int64
	Name      string
	Sign      string
	Remark    string
	Status    DictStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// DictFilter narrows dictionary listings. Nil fields are not applied.
type DictFilter struct {
	Keyword   *string
	Status    *DictStatus
	Sign      *string
	ExcludeID *int64
	Limit     int
	Offset    int
}

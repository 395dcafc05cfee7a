package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDirection_Apply(t *testing.T) {
	current := decimal.RequireFromString("100.00")
	amount := decimal.RequireFromString("25.50")

	if got := DirectionIncrement.ApplyDecimal(current, amount); !got.Equal(decimal.RequireFromString("125.50")) {
		t.Errorf("increment: expected 125.50, got %s", got)
	}
	if got := DirectionDecrement.ApplyDecimal(current, amount); !got.Equal(decimal.RequireFromString("74.50")) {
		t.Errorf("decrement: expected 74.50, got %s", got)
	}
	if got := DirectionIncrement.ApplyInt(50, 7); got != 57 {
		t.Errorf("increment: expected 57, got %d", got)
	}
	if got := DirectionDecrement.ApplyInt(50, 70); got != -20 {
		t.Errorf("decrement: expected -20, got %d", got)
	}
}

func TestDirection_RoundTripIsExact(t *testing.T) {
	start := decimal.RequireFromString("0.10")
	x := decimal.RequireFromString("0.20")

	after := DirectionIncrement.ApplyDecimal(DirectionDecrement.ApplyDecimal(start, x), x)
	if !after.Equal(start) {
		t.Fatalf("expected %s after round trip, got %s", start, after)
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("increment"); err != nil || d != DirectionIncrement {
		t.Fatalf("expected increment, got %q err=%v", d, err)
	}
	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestBill_Signed(t *testing.T) {
	inc := &Bill{Direction: DirectionIncrement, Amount: decimal.NewFromInt(3)}
	dec := &Bill{Direction: DirectionDecrement, Amount: decimal.NewFromInt(3)}

	if !inc.Signed().Equal(decimal.NewFromInt(3)) {
		t.Errorf("expected +3, got %s", inc.Signed())
	}
	if !dec.Signed().Equal(decimal.NewFromInt(-3)) {
		t.Errorf("expected -3, got %s", dec.Signed())
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStorageError("append bill", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be visible")
	}
	if !IsStorageError(err) {
		t.Fatalf("expected IsStorageError to be true")
	}
	if err.Error() != "storage: append bill: connection reset" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if NewStorageError("noop", nil) != nil {
		t.Fatalf("expected nil for nil cause")
	}
}

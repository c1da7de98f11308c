package domain

import (
	"errors"
	"testing"
)

func TestNewUserLimit(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		want    UserLimit
		wantErr bool
	}{
		{name: "lower bound", input: 1, want: 1},
		{name: "upper bound", input: 99, want: 99},
		{name: "typical", input: 5, want: 5},
		{name: "zero", input: 0, wantErr: true},
		{name: "negative", input: -3, wantErr: true},
		{name: "above upper bound", input: 100, wantErr: true},
		{name: "far above upper bound", input: 150, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewUserLimit(tt.input)

			if tt.wantErr {
				if !errors.Is(err, ErrLimitOutOfRange) {
					t.Errorf("expected ErrLimitOutOfRange, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected limit %d, got %d", tt.want, got)
			}
			if got.IsUnlimited() {
				t.Error("expected validated limit to not be unlimited")
			}
		})
	}
}

func TestUnlimited_IsUnlimited(t *testing.T) {
	if !Unlimited.IsUnlimited() {
		t.Error("expected Unlimited to report IsUnlimited")
	}
}

package domain

import (
	"errors"
	"fmt"
)

// Occupancy cap bounds accepted from users.
const (
	MinUserLimit = 1
	MaxUserLimit = 99
)

// ErrLimitOutOfRange is returned when a requested cap is outside
// [MinUserLimit, MaxUserLimit].
var ErrLimitOutOfRange = errors.New("user limit is out of range")

// UserLimit is a voice channel occupancy cap. Zero means unlimited.
type UserLimit int

// Unlimited removes the occupancy cap.
const Unlimited UserLimit = 0

// NewUserLimit validates n and returns it as a UserLimit.
func NewUserLimit(n int) (UserLimit, error) {
	if n < MinUserLimit || n > MaxUserLimit {
		return Unlimited, fmt.Errorf(
			"%w: %d is not between %d and %d",
			ErrLimitOutOfRange, n, MinUserLimit, MaxUserLimit,
		)
	}
	return UserLimit(n), nil
}

// IsUnlimited reports whether the limit removes the cap.
func (l UserLimit) IsUnlimited() bool {
	return l == Unlimited
}

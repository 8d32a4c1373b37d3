package intent

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type TimeUnit int

const (
	UnitNone TimeUnit = iota
	UnitSeconds
	UnitMinutes
	UnitHours
)

func (u TimeUnit) String() string {
	switch u {
	case UnitSeconds:
		return "seconds"
	case UnitMinutes:
		return "minutes"
	case UnitHours:
		return "hours"
	default:
		return "none"
	}
}

// ParseQuantity accepts the articles "a"/"an" as 1, otherwise a non-negative
// integer token.
func ParseQuantity(token string) (int, error) {
	switch strings.ToLower(token) {
	case "a", "an":
		return 1, nil
	}

	quantity, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a number: %w", token, err)
	}
	if quantity < 0 {
		return 0, errors.New("quantity must not be negative")
	}

	return quantity, nil
}

// ParseUnit matches on a case-insensitive prefix so "min", "mins" and
// "minutes" all resolve the same way.
func ParseUnit(token string) TimeUnit {
	token = strings.ToLower(token)

	switch {
	case strings.HasPrefix(token, "sec"):
		return UnitSeconds
	case strings.HasPrefix(token, "min"):
		return UnitMinutes
	case strings.HasPrefix(token, "hour"):
		return UnitHours
	}

	return UnitNone
}

// ToSeconds converts a quantity in the given unit to whole seconds. UnitNone
// converts to 0; the intent patterns only admit sec/min/hour tokens, so a zero
// result never reaches the scheduler through normal parsing.
func ToSeconds(quantity int, unit TimeUnit) int {
	switch unit {
	case UnitSeconds:
		return quantity
	case UnitMinutes:
		return quantity * 60
	case UnitHours:
		return quantity * 3600
	}

	return 0
}
